package smartthings

import "github.com/desertthunder/spotthings/internal/services"

const (
	// DeviceHandlerType is the ST device profile every Spotify device is exposed as.
	DeviceHandlerType = "c2c-music-player"
	ManufacturerName  = "Spotify"
	HardwareVersion   = "v1"
	SoftwareVersion   = "1"
)

// ManufacturerInfo describes who made a device.
type ManufacturerInfo struct {
	ManufacturerName string `json:"manufacturerName"`
	ModelName        string `json:"modelName"`
	HwVersion        string `json:"hwVersion"`
	SwVersion        string `json:"swVersion"`
}

// DeviceDescriptor is one device in a discovery response.
type DeviceDescriptor struct {
	ExternalDeviceID  string           `json:"externalDeviceId"`
	FriendlyName      string           `json:"friendlyName"`
	DeviceHandlerType string           `json:"deviceHandlerType"`
	ManufacturerInfo  ManufacturerInfo `json:"manufacturerInfo"`
}

// DiscoveryResponse answers a [DiscoveryRequest].
type DiscoveryResponse struct {
	Headers Headers            `json:"headers"`
	Devices []DeviceDescriptor `json:"devices"`
}

// Translate maps Spotify devices to a discovery response, one descriptor per device in input order.
func Translate(requestID string, devices []services.SpotifyDevice) DiscoveryResponse {
	out := make([]DeviceDescriptor, 0, len(devices))
	for _, d := range devices {
		out = append(out, DeviceDescriptor{
			ExternalDeviceID:  d.ID,
			FriendlyName:      d.Name,
			DeviceHandlerType: DeviceHandlerType,
			ManufacturerInfo: ManufacturerInfo{
				ManufacturerName: ManufacturerName,
				ModelName:        d.Type,
				HwVersion:        HardwareVersion,
				SwVersion:        SoftwareVersion,
			},
		})
	}

	return DiscoveryResponse{
		Headers: Headers{
			Schema:          Schema,
			Version:         Version,
			InteractionType: InteractionDiscoveryResp,
			RequestID:       requestID,
		},
		Devices: out,
	}
}
