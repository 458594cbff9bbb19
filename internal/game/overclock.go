package game

const ramStep float32 = 266.67

// CPUClock is the cosmetic CPU frequency in GHz, in [1.9, 6.0].
func CPUClock(size int, ownerID uint64) float32 {
	return float32((uint64(size)+ownerID)%42+19) / 10.0
}

// RAMClock is the cosmetic memory frequency in MHz, aligned up to the next
// 266.67 MHz step.
func RAMClock(size int, ownerID uint64) uint32 {
	clock := uint32((uint64(size)+ownerID)%4533 + 1333)
	return clock + uint32(ramStep-remEuclid32(float32(clock), ramStep))
}

// GPUHashrate is the cosmetic hashrate in MH/s, in [0, 128).
func GPUHashrate(size int, ownerID uint64) float32 {
	return float32((uint64(size)+ownerID)%12800) / 100.0
}

// Overclock bundles all three stats for one owner and day.
type Overclock struct {
	Size        int     `json:"size"`
	CPUClock    float32 `json:"cpu_clock"`
	CPUEmoji    string  `json:"cpu_emoji"`
	RAMClock    uint32  `json:"ram_clock"`
	RAMEmoji    string  `json:"ram_emoji"`
	GPUHashrate float32 `json:"gpu_hashrate"`
	GPUEmoji    string  `json:"gpu_emoji"`
}

// NewOverclock computes the overclock stats for a pig of the given size.
func NewOverclock(size int, ownerID uint64) Overclock {
	cpu := CPUClock(size, ownerID)
	ram := RAMClock(size, ownerID)
	gpu := GPUHashrate(size, ownerID)

	return Overclock{
		Size:        size,
		CPUClock:    cpu,
		CPUEmoji:    CPUEmoji(cpu),
		RAMClock:    ram,
		RAMEmoji:    RAMEmoji(ram),
		GPUHashrate: gpu,
		GPUEmoji:    GPUEmoji(gpu),
	}
}

func CPUEmoji(clock float32) string {
	switch {
	case clock >= 5.5:
		return "🌋"
	case clock >= 5.0:
		return "💥"
	case clock >= 4.7:
		return "💣"
	case clock >= 4.4:
		return "🧨"
	case clock >= 4.0:
		return "♨"
	default:
		return "🧊"
	}
}

func RAMEmoji(clock uint32) string {
	switch {
	case clock >= 5300:
		return "🌋"
	case clock >= 5000:
		return "💥"
	case clock >= 4600:
		return "💣"
	case clock >= 4000:
		return "🧨"
	case clock >= 3600:
		return "♨"
	default:
		return "🧊"
	}
}

func GPUEmoji(hashrate float32) string {
	switch {
	case hashrate >= 120.0:
		return "🔥"
	case hashrate >= 110.0:
		return "🚝"
	case hashrate >= 100.0:
		return "🚜"
	case hashrate >= 80.0:
		return "🚛"
	case hashrate >= 60.0:
		return "⛹"
	case hashrate >= 40.0:
		return "🧗"
	case hashrate >= 20.0:
		return "🤸"
	default:
		return "🐢"
	}
}
