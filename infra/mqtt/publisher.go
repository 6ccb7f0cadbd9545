package mqtt

import (
	"encoding/json"
	"fmt"
	"time"
)

// positionMessage is the wire format published for each grid step.
type positionMessage struct {
	VehicleID string `json:"vehicle_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	FinalX    int    `json:"final_x"`
	FinalY    int    `json:"final_y"`
	Finished  bool   `json:"finished"`
	Timestamp int64  `json:"timestamp"`
}

// UpdateVehiclePosition publishes the step to <prefix>/<vehicle_id>/position.
// Publish failures are logged, not surfaced: telemetry must never stall a
// running rental.
func (p *PahoClient) UpdateVehiclePosition(vehicleID string, x, y, finalX, finalY int, finished bool) {
	msg := positionMessage{
		VehicleID: vehicleID,
		X:         x,
		Y:         y,
		FinalX:    finalX,
		FinalY:    finalY,
		Finished:  finished,
		Timestamp: time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.Errorf("encode position for %s: %v", vehicleID, err)
		return
	}
	prefix := p.topicPrefix
	if prefix == "" {
		prefix = "fleet"
	}
	topic := fmt.Sprintf("%s/%s/position", prefix, vehicleID)
	if err := p.publish(topic, "position", payload); err != nil {
		p.logger.Errorf("publish position for %s: %v", vehicleID, err)
	}
}
