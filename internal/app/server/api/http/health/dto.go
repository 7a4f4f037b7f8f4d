package health

type Input struct{}

type Output struct {
	Body Response
}

// Response - состояние сервера и его хранилища
type Response struct {
	Status   string `json:"status" example:"OK" doc:"Состояние сервера"`
	Database string `json:"database" enum:"up,not_configured" example:"up" doc:"Состояние PostgreSQL"`
}
