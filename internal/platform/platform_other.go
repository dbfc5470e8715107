//go:build !linux

package platform

func refineFromHost(p *Platform) {}
