// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend
)

// Device acquisition errors.
var (
	// ErrNoBackend is returned when the Vulkan backend is not registered.
	ErrNoBackend = errors.New("gpu: vulkan backend not available")

	// ErrNoAdapter is returned when the instance exposes no adapters.
	ErrNoAdapter = errors.New("gpu: no GPU adapters found")

	// ErrProviderNotHAL is returned when a device provider does not expose
	// hal.Device and hal.Queue.
	ErrProviderNotHAL = errors.New("gpu: provider does not expose HAL types")
)

// Device is a hal device opened by this package. It owns the instance it was
// enumerated from.
type Device struct {
	instance hal.Instance

	Device      hal.Device
	Queue       hal.Queue
	AdapterName string
}

// OpenDevice opens a device on the Vulkan backend, preferring a discrete or
// integrated GPU over software adapters. It blocks until the device is ready.
func OpenDevice() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, ErrNoBackend
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	return openFromInstance(instance)
}

// openFromInstance selects an adapter from instance and opens it. On failure
// the instance is destroyed.
func openFromInstance(instance hal.Instance) (*Device, error) {
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	slogger().Info("GPU device opened", "adapter", selected.Info.Name)
	return &Device{
		instance:    instance,
		Device:      openDev.Device,
		Queue:       openDev.Queue,
		AdapterName: selected.Info.Name,
	}, nil
}

// Destroy releases the device and its instance. Safe to call more than once.
func (d *Device) Destroy() {
	if d.Device != nil {
		d.Device.Destroy()
		d.Device = nil
	}
	if d.instance != nil {
		d.instance.Destroy()
		d.instance = nil
	}
	d.Queue = nil
}

// DeviceFromProvider extracts the hal device and queue from a provider that
// implements HalDevice and HalQueue, such as a gogpu window.
func DeviceFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}
	return device, queue, nil
}
