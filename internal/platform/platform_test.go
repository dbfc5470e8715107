package platform

import "testing"

func TestDetect(t *testing.T) {
	p := Detect()

	if p.CoresPhysical < 1 {
		t.Errorf("CoresPhysical = %d", p.CoresPhysical)
	}
	if p.ThreadsPerCore < 1 {
		t.Errorf("ThreadsPerCore = %d", p.ThreadsPerCore)
	}
	if p.SIMDRegSize < 16 {
		t.Errorf("SIMDRegSize = %d", p.SIMDRegSize)
	}
}

func TestSIMDItems(t *testing.T) {
	p := Platform{SIMDRegSize: 32}

	if got := p.SIMDItems(4); got != 8 {
		t.Errorf("SIMDItems(4) = %d, want 8", got)
	}
	if got := p.SIMDItems(8); got != 4 {
		t.Errorf("SIMDItems(8) = %d, want 4", got)
	}
	if got := p.SIMDItems(0); got != 1 {
		t.Errorf("SIMDItems(0) = %d, want 1", got)
	}
}
