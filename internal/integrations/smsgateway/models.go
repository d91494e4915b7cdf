package smsgateway

// MessageResponse ответ шлюза на создание сообщения
type MessageResponse struct {
	SID       string `json:"sid"`
	Status    string `json:"status"`
	To        string `json:"to"`
	ErrorCode *int   `json:"error_code"`
}

// ErrorResponse модель ошибки от шлюза
type ErrorResponse struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}
