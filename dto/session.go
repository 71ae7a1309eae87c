package dto

type CreateSessionRequest struct {
	Seed  uint64 `json:"seed"`
	Level int    `json:"level"`
}

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Level     int    `json:"level"`
	Seed      uint64 `json:"seed"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

type DepositRequest struct {
	Amount *int `json:"amount" binding:"required"`
}

type ProductionRequest struct {
	Slots *int `json:"slots" binding:"required"`
}

type OrderRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}
