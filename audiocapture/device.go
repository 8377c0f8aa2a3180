package audiocapture

import (
	"log/slog"

	"github.com/gordonklaus/portaudio"
)

// Initialize sets up the PortAudio runtime. Call once at startup.
func Initialize() error {
	return portaudio.Initialize()
}

// Terminate tears down the PortAudio runtime. Call once at shutdown.
func Terminate() error {
	return portaudio.Terminate()
}

// ListMicrophones returns the names of input-capable devices. A device
// query failure is logged and yields an empty list, not an error: the UI
// treats "no devices" and "cannot enumerate" the same way.
func ListMicrophones() []string {
	devices, err := portaudio.Devices()
	if err != nil {
		slog.Warn("query audio devices", "error", err)
		return nil
	}
	var names []string
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			names = append(names, d.Name)
		}
	}
	return names
}

// resolveDevice maps a configured device name to a PortAudio device,
// falling back to the system default input when the name is empty or no
// longer present (the microphone may have been unplugged since it was
// configured).
func resolveDevice(name string) (*portaudio.DeviceInfo, error) {
	if name != "" {
		devices, err := portaudio.Devices()
		if err != nil {
			slog.Warn("query audio devices while resolving", "device", name, "error", err)
		} else {
			for _, d := range devices {
				if d.Name == name && d.MaxInputChannels > 0 {
					return d, nil
				}
			}
			slog.Warn("configured device not found, using default", "device", name)
		}
	}
	return portaudio.DefaultInputDevice()
}
