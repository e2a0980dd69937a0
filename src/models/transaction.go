package models

import "time"

type Transaction struct {
	ID        int64     `json:"id"`
	Amount    float64   `json:"amount"`
	Date      Date      `json:"date"`
	ClientID  int64     `json:"client_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
