package platform

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// refineFromHost fills in topology from sysfs and the machine type from
// uname. Per-field failures leave the portable defaults in place.
func refineFromHost(p *Platform) {
	if tpc, ok := threadsPerCore(); ok {
		p.ThreadsPerCore = tpc
		if p.CoresPhysical >= tpc && tpc > 0 {
			p.CoresPhysical = p.CoresPhysical / tpc
		}
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		switch machine(uts) {
		case "x86_64":
			p.SIMDRegSize = 32 // AVX2 baseline
		case "aarch64":
			p.SIMDRegSize = 16 // NEON
		}
	}
}

func machine(uts unix.Utsname) string {
	return strings.TrimRight(string(uts.Machine[:]), "\x00")
}

// threadsPerCore derives the hyperthreading degree from the sibling list of
// cpu0.
func threadsPerCore() (int, bool) {
	raw, err := os.ReadFile("/sys/devices/system/cpu/cpu0/topology/thread_siblings_list")
	if err != nil {
		return 0, false
	}
	n := 0
	for _, part := range strings.Split(strings.TrimSpace(string(raw)), ",") {
		if lo, hi, found := strings.Cut(part, "-"); found {
			a, err1 := strconv.Atoi(lo)
			b, err2 := strconv.Atoi(hi)
			if err1 != nil || err2 != nil || b < a {
				return 0, false
			}
			n += b - a + 1
		} else if part != "" {
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return n, true
}
