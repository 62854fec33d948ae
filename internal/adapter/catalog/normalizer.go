package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

// toDomainProduct converts a catalog product DTO to the domain entity.
// Missing price and rating fields become "absent" values, never errors:
// such products are excluded from price filters and sunk in price sorts.
func toDomainProduct(dto productDTO) domain.Product {
	p := domain.Product{
		ID:       dto.ID,
		Title:    dto.Title,
		City:     dto.City,
		Category: dto.Category,
	}

	if dto.Price != nil {
		p.Price = *dto.Price
		p.HasPrice = true
	}
	if dto.Rating != nil {
		p.Rating = *dto.Rating
	}

	for _, s := range dto.Schedules {
		p.Schedules = append(p.Schedules, domain.Schedule{
			ID:    s.ID,
			Price: s.Price,
			Date:  s.Date,
			Time:  s.Time,
		})
	}
	for _, t := range dto.TimeSlots {
		p.TimeSlots = append(p.TimeSlots, domain.TimeSlot{
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		})
	}

	return p
}

func toDomainProducts(dtos []productDTO) []domain.Product {
	result := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		result = append(result, toDomainProduct(dto))
	}
	return result
}

// normalizeListing converts a simple-listing response body into a
// ProductPage. The endpoint answers with either a bare array (legacy) or a
// paginated envelope; this is the single place both shapes are handled.
func normalizeListing(body []byte, requestedPage int) (domain.ProductPage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return domain.ProductPage{}, fmt.Errorf("empty listing response")
	}

	if trimmed[0] == '[' {
		// Legacy shape: everything in one unpaginated array.
		var dtos []productDTO
		if err := json.Unmarshal(trimmed, &dtos); err != nil {
			return domain.ProductPage{}, fmt.Errorf("decode legacy listing: %w", err)
		}
		return domain.ProductPage{
			Products:   toDomainProducts(dtos),
			Page:       1,
			TotalPages: 1,
			Total:      len(dtos),
		}, nil
	}

	var dto paginatedListDTO
	if err := json.Unmarshal(trimmed, &dto); err != nil {
		return domain.ProductPage{}, fmt.Errorf("decode paginated listing: %w", err)
	}

	page := dto.Pagination.Page
	if page == 0 {
		page = requestedPage
	}
	totalPages := dto.Pagination.TotalPages
	if totalPages == 0 {
		totalPages = 1
	}

	return domain.ProductPage{
		Products:   toDomainProducts(dto.Products),
		Page:       page,
		TotalPages: totalPages,
		Total:      dto.Pagination.Total,
	}, nil
}

// normalizeCategories flattens the mixed string/object category entries
// into plain slugs. Objects prefer their slug over their name; entries with
// neither are dropped.
func normalizeCategories(body []byte) ([]string, error) {
	var dto categoriesDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}

	result := make([]string, 0, len(dto.Categories))
	for _, raw := range dto.Categories {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s != "" {
				result = append(result, s)
			}
			continue
		}

		var obj categoryObjectDTO
		if err := json.Unmarshal(raw, &obj); err != nil {
			continue
		}
		switch {
		case obj.Slug != "":
			result = append(result, obj.Slug)
		case obj.Name != "":
			result = append(result, obj.Name)
		}
	}
	return result, nil
}
