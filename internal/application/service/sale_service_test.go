package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/pkg/pagination"
)

func TestGetDueSalesPaginates(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	svc := NewSaleService(saleRepo, &fakeSaleItemRepo{}, newFakeMedicineRepo())

	ctx := context.Background()
	operator := uuid.New()
	for i := 0; i < 3; i++ {
		saleRepo.Create(ctx, &entity.Sale{UserID: operator, Total: 1000, Paid: 500, Due: 500})
	}
	// Settled sale and another operator's debt stay out of the listing
	saleRepo.Create(ctx, &entity.Sale{UserID: operator, Total: 1000, Paid: 1000})
	saleRepo.Create(ctx, &entity.Sale{UserID: uuid.New(), Total: 800, Due: 800})

	result, err := svc.GetDueSales(ctx, operator, &pagination.PaginationParams{Page: 1, PerPage: 2})
	if err != nil {
		t.Fatal(err)
	}

	if result.Pagination.Total != 3 {
		t.Errorf("total = %d, want 3", result.Pagination.Total)
	}
	if len(result.Items) != 2 {
		t.Errorf("items on page = %d, want 2", len(result.Items))
	}
	if !result.Pagination.HasNext {
		t.Error("expected a second page of due sales")
	}
	for _, s := range result.Items {
		if s.Due <= 0 {
			t.Error("settled sale returned in due listing")
		}
	}
}
