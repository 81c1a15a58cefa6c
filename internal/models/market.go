// Package models defines data structures for Augur
package models

import (
	"time"
)

// Bar represents a single price bar at daily or intraday granularity
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// RealTimeQuote is the response shape for the realtime endpoint.
// Prices are rounded to 2 decimals; Timestamp is "YYYY-MM-DD HH:MM:SS".
type RealTimeQuote struct {
	Symbol    string  `json:"symbol"`
	Source    string  `json:"source"`
	Current   float64 `json:"current"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Open      float64 `json:"open"`
	Timestamp string  `json:"timestamp"`
}

// SymbolMatch is a single autocomplete candidate
type SymbolMatch struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
}

// ServiceInfo is the root endpoint descriptor
type ServiceInfo struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// Closes extracts the closing prices from a chronologically ordered bar slice
func Closes(bars []Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
