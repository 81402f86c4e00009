package vulkan

import "testing"

// gpuName is pure Go and safe to exercise without a Vulkan driver present.
func TestGPUNameStopsAtNulTerminator(t *testing.T) {
	var props C.VkPhysicalDeviceProperties
	label := []byte("Stub GPU\x00padding-that-should-be-ignored")
	for i, b := range label {
		if i >= len(props.deviceName) {
			break
		}
		props.deviceName[i] = C.char(b)
	}

	if got := gpuName(props); got != "Stub GPU" {
		t.Errorf("expected name to stop at the nul terminator, got %q", got)
	}
}
