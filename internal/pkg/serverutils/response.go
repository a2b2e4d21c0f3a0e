package serverutils

import "github.com/gofiber/fiber/v2/utils"

type SuccessBody[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrorBody struct {
	Success bool              `json:"success"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func SuccessResponse[T any](message string, data T) SuccessBody[T] {
	return SuccessBody[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, err string) ErrorBody {
	return ErrorBody{
		Success: false,
		Code:    code,
		Message: utils.StatusMessage(code),
		Error:   err,
	}
}
