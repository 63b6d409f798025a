package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/flickmark/flickmark-be/internal/models"
	"github.com/flickmark/flickmark-be/internal/services"
)

type fakeCatalogService struct {
	items    []models.AnnotatedCatalogItem
	err      error
	category string
	userID   string
}

func (f *fakeCatalogService) ListCatalog(_ context.Context, category, userID string) ([]models.AnnotatedCatalogItem, error) {
	f.category = category
	f.userID = userID
	return f.items, f.err
}

var _ services.CatalogServiceProvider = (*fakeCatalogService)(nil)

func TestCatalogList(t *testing.T) {
	item := models.AnnotatedCatalogItem{
		CatalogItem:  models.CatalogItem{ID: primitive.NewObjectID(), Title: "Beyond Earth", Category: models.CategoryMovie},
		IsBookmarked: true,
	}
	svc := &fakeCatalogService{items: []models.AnnotatedCatalogItem{item}}
	h := NewCatalogHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog?category=Movie&userId=abc", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.category != "Movie" || svc.userID != "abc" {
		t.Fatalf("query params not forwarded: category=%q userId=%q", svc.category, svc.userID)
	}

	body := decodeBody(t, rec)
	data, ok := body["data"].([]interface{})
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v, want one item", body["data"])
	}
	first := data[0].(map[string]interface{})
	if first["isBookmarked"] != true {
		t.Fatalf("isBookmarked missing from payload: %v", first)
	}
}

func TestCatalogListErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"bad category", &models.ValidationError{Field: "category", Reason: "unknown"}, http.StatusBadRequest},
		{"store down", models.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewCatalogHandler(&fakeCatalogService{err: tc.err})
			rec := httptest.NewRecorder()
			h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			body := decodeBody(t, rec)
			if body["success"] != false {
				t.Fatalf("success = %v, want false", body["success"])
			}
		})
	}
}
