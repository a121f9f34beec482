package profile

type saveInput struct {
	Body saveRequest
}

type saveRequest struct {
	Name string `json:"name" doc:"Имя пользователя"`
}

type statusOutput struct {
	Body profileStatusResponse
}

type profileStatusResponse struct {
	Status string `json:"status"`
}
