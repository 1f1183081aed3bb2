// Package model holds the persisted entities and the transfer objects
// used to decouple the wire representation from the stored one.
package model

import "github.com/shopspring/decimal"

func init() {
	// Prices are rendered as JSON numbers (9.99) instead of strings ("9.99").
	decimal.MarshalJSONWithoutQuotes = true
}
