// Package apperr defines the error taxonomy shared by stores, the order
// workflow and the HTTP layer: not-found and business-rule failures carry
// their own types so handlers can map them to 404/400.
package apperr

import "fmt"

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NotFound builds a NotFoundError for the given resource kind and id.
func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

type InsufficientStockError struct {
	ProductName string
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for product %s. Available: %d", e.ProductName, e.Available)
}

// InsufficientStock builds the business-rule error raised when a requested
// quantity exceeds the product's current stock.
func InsufficientStock(productName string, available int) *InsufficientStockError {
	return &InsufficientStockError{ProductName: productName, Available: available}
}
