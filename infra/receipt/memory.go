package receipt

import (
	"sync"

	"github.com/kilianp07/fleetrent/core/rental"
)

// MemorySink collects receipts in memory for reporting.
type MemorySink struct {
	mu       sync.Mutex
	receipts []rental.Receipt
}

// NewMemorySink returns an empty sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// HandleReceipt stores the receipt.
func (s *MemorySink) HandleReceipt(r rental.Receipt) error {
	s.mu.Lock()
	s.receipts = append(s.receipts, r)
	s.mu.Unlock()
	return nil
}

// Receipts returns a copy of all collected receipts.
func (s *MemorySink) Receipts() []rental.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]rental.Receipt(nil), s.receipts...)
}

// TopVehicle names the most profitable vehicle of one type.
type TopVehicle struct {
	VehicleID string
	Revenue   float64
}

// TopRevenueByType returns, per vehicle type, the vehicle with the highest
// total revenue across the collected receipts. vehicleTypes maps vehicle id
// to its type; receipts for unmapped vehicles are ignored.
func (s *MemorySink) TopRevenueByType(vehicleTypes map[string]string) map[string]TopVehicle {
	s.mu.Lock()
	defer s.mu.Unlock()

	revenueByVehicle := make(map[string]float64)
	for _, r := range s.receipts {
		revenueByVehicle[r.VehicleID] += r.TotalPrice
	}

	top := make(map[string]TopVehicle)
	for vehicleID, revenue := range revenueByVehicle {
		typ, ok := vehicleTypes[vehicleID]
		if !ok {
			continue
		}
		best, exists := top[typ]
		if !exists || revenue > best.Revenue {
			top[typ] = TopVehicle{VehicleID: vehicleID, Revenue: revenue}
		}
	}
	return top
}
