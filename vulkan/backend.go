// Package vulkan is the renderer's stub GPU backend: it proves that a
// Vulkan-capable device is present and brings up an instance, physical
// device and logical device, but issues no compute or draw commands.
// The renderer itself only ever runs on the CPU path tracer in
// package renderer; this backend exists so a future GPU path has
// somewhere to start from.
package vulkan

/*
#include <vulkan/vulkan.h>
#include <stdlib.h>
#include <string.h>

uint32_t rateDevice(VkPhysicalDevice device, uint32_t* graphicsFamily, bool* hasGraphics) {
    VkPhysicalDeviceProperties properties;
    VkPhysicalDeviceFeatures features;
    vkGetPhysicalDeviceProperties(device, &properties);
    vkGetPhysicalDeviceFeatures(device, &features);

    uint32_t queueFamilyCount = 0;
    vkGetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, NULL);
    VkQueueFamilyProperties* families = (VkQueueFamilyProperties*)malloc(queueFamilyCount * sizeof(VkQueueFamilyProperties));
    vkGetPhysicalDeviceQueueFamilyProperties(device, &queueFamilyCount, families);

    *hasGraphics = false;
    for (uint32_t i = 0; i < queueFamilyCount; i++) {
        if (families[i].queueFlags & VK_QUEUE_GRAPHICS_BIT) {
            *graphicsFamily = i;
            *hasGraphics = true;
            break;
        }
    }
    free(families);

    if (!*hasGraphics) return 0;

    uint32_t score = 1;
    if (properties.deviceType == VK_PHYSICAL_DEVICE_TYPE_DISCRETE_GPU) {
        score += 1000;
    }
    score += properties.limits.maxImageDimension2D;
    return score;
}
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// Backend owns the Vulkan instance, the chosen physical device, and the
// logical device/queue it creates on that device. Nothing here is
// exercised by a render: Init is the entire lifecycle a caller needs.
type Backend struct {
	instance       C.VkInstance
	physicalDevice C.VkPhysicalDevice
	device         C.VkDevice
	graphicsQueue  C.VkQueue
	graphicsFamily uint32
	deviceName     string
}

// Init creates a Vulkan instance, picks the highest-scoring physical
// device with a graphics-capable queue family, and brings up a logical
// device on it. It is a Fatal-class error (per the error-handling
// design) for the caller to treat "no suitable GPU found" as anything
// but process termination, since the stub backend has no CPU fallback
// of its own.
func Init(appName string) (*Backend, error) {
	instance, err := createInstance(appName)
	if err != nil {
		return nil, err
	}

	physical, family, name, err := pickPhysicalDevice(instance)
	if err != nil {
		C.vkDestroyInstance(instance, nil)
		return nil, err
	}

	device, queue, err := createLogicalDevice(physical, family)
	if err != nil {
		C.vkDestroyInstance(instance, nil)
		return nil, err
	}

	return &Backend{
		instance:       instance,
		physicalDevice: physical,
		device:         device,
		graphicsQueue:  queue,
		graphicsFamily: family,
		deviceName:     name,
	}, nil
}

// DeviceName reports the chosen physical device's name, for diagnostic
// logging at startup.
func (b *Backend) DeviceName() string {
	return b.deviceName
}

// Shutdown tears down the logical device and instance in reverse
// creation order.
func (b *Backend) Shutdown() {
	if b.device != nil {
		C.vkDestroyDevice(b.device, nil)
	}
	if b.instance != nil {
		C.vkDestroyInstance(b.instance, nil)
	}
}

func createInstance(appName string) (C.VkInstance, error) {
	cAppName := C.CString(appName)
	defer C.free(unsafe.Pointer(cAppName))
	cEngineName := C.CString("crystals")
	defer C.free(unsafe.Pointer(cEngineName))

	appInfo := C.VkApplicationInfo{
		sType:              C.VK_STRUCTURE_TYPE_APPLICATION_INFO,
		pApplicationName:   cAppName,
		applicationVersion: 1,
		pEngineName:        cEngineName,
		engineVersion:      1,
		apiVersion:         C.VK_API_VERSION_1_2,
	}

	createInfo := C.VkInstanceCreateInfo{
		sType:            C.VK_STRUCTURE_TYPE_INSTANCE_CREATE_INFO,
		pApplicationInfo: &appInfo,
	}

	var instance C.VkInstance
	if result := C.vkCreateInstance(&createInfo, nil, &instance); result != C.VK_SUCCESS {
		return nil, fmt.Errorf("vulkan: failed to create instance: %d", int(result))
	}
	return instance, nil
}

func pickPhysicalDevice(instance C.VkInstance) (C.VkPhysicalDevice, uint32, string, error) {
	var deviceCount C.uint32_t
	if result := C.vkEnumeratePhysicalDevices(instance, &deviceCount, nil); result != C.VK_SUCCESS || deviceCount == 0 {
		return nil, 0, "", fmt.Errorf("vulkan: no GPUs with Vulkan support found")
	}

	devices := make([]C.VkPhysicalDevice, deviceCount)
	C.vkEnumeratePhysicalDevices(instance, &deviceCount, &devices[0])

	var best C.VkPhysicalDevice
	var bestScore C.uint32_t
	var bestFamily C.uint32_t

	for _, device := range devices {
		var family C.uint32_t
		var hasGraphics C.bool
		score := C.rateDevice(device, &family, &hasGraphics)
		if bool(hasGraphics) && score > bestScore {
			bestScore = score
			best = device
			bestFamily = family
		}
	}

	if best == nil {
		return nil, 0, "", fmt.Errorf("vulkan: failed to find a suitable GPU")
	}

	var props C.VkPhysicalDeviceProperties
	C.vkGetPhysicalDeviceProperties(best, &props)
	name := gpuName(props)

	return best, uint32(bestFamily), name, nil
}

func createLogicalDevice(physical C.VkPhysicalDevice, family uint32) (C.VkDevice, C.VkQueue, error) {
	queuePriority := C.float(1.0)
	queueCreateInfo := C.VkDeviceQueueCreateInfo{
		sType:            C.VK_STRUCTURE_TYPE_DEVICE_QUEUE_CREATE_INFO,
		queueFamilyIndex: C.uint32_t(family),
		queueCount:       1,
		pQueuePriorities: &queuePriority,
	}

	createInfo := C.VkDeviceCreateInfo{
		sType:                C.VK_STRUCTURE_TYPE_DEVICE_CREATE_INFO,
		queueCreateInfoCount: 1,
		pQueueCreateInfos:    &queueCreateInfo,
	}

	var device C.VkDevice
	if result := C.vkCreateDevice(physical, &createInfo, nil, &device); result != C.VK_SUCCESS {
		return nil, nil, fmt.Errorf("vulkan: failed to create logical device: %d", int(result))
	}

	var queue C.VkQueue
	C.vkGetDeviceQueue(device, C.uint32_t(family), 0, &queue)

	return device, queue, nil
}

func gpuName(props C.VkPhysicalDeviceProperties) string {
	name := make([]byte, len(props.deviceName))
	for i := range name {
		name[i] = byte(props.deviceName[i])
	}
	for i, b := range name {
		if b == 0 {
			return string(name[:i])
		}
	}
	return string(name)
}
