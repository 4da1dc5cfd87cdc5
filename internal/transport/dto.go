package transport

import (
	"fmt"

	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/service"
)

// Request fields are pointers so an absent field can be told apart from a
// zero value.

type LoginRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return requireFields(field{"username", r.Username != nil}, field{"password", r.Password != nil})
}

type CreateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (r CreateUserRequest) Validate() error {
	return requireFields(field{"username", r.Username != nil}, field{"password", r.Password != nil})
}

type ProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

func (r ProductRequest) Validate() error {
	return requireFields(
		field{"name", r.Name != nil},
		field{"description", r.Description != nil},
		field{"price", r.Price != nil},
	)
}

type field struct {
	name    string
	present bool
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if !f.present {
			return fmt.Errorf("%w: missing field %q", service.ErrValidation, f.name)
		}
	}
	return nil
}

type MessageResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type ProductResponse struct {
	Message string          `json:"message"`
	Product *models.Product `json:"product"`
}

type Report struct {
	TotalProducts   int    `json:"total_produtos"`
	TotalStockValue string `json:"valor_total_estoque"`
}

type ReportResponse struct {
	Report Report `json:"relatorio"`
}

func NewReportResponse(r *service.Report) ReportResponse {
	return ReportResponse{Report: Report{
		TotalProducts:   r.TotalProducts,
		TotalStockValue: r.TotalStockValue,
	}}
}
