package steg

// headerBits is the size of the big-endian bit-count header that precedes
// every embedded payload.
const headerBits = 32

// pixelSlots lists the byte indices of a flat RGBA component buffer that are
// legal embedding targets: everything except every 4th byte, which is the
// alpha channel.
func pixelSlots(componentCount int) []int {
	slots := make([]int, 0, componentCount-componentCount/4)
	for i := 0; i < componentCount; i++ {
		if i%4 == 3 {
			continue
		}
		slots = append(slots, i)
	}
	return slots
}

// audioSlots lists the flattened (channel, frame) positions of a clip:
// globalIndex = frame*channelCount + channel.
func audioSlots(channelCount, frameCount int) []int {
	slots := make([]int, channelCount*frameCount)
	for i := range slots {
		slots[i] = i
	}
	return slots
}

// ImageCapacity returns the number of payload bytes an image of the given
// dimensions can hold after the header reserve.
func ImageCapacity(width, height int) int {
	slots := width * height * 3
	if slots <= headerBits {
		return 0
	}
	return (slots - headerBits) / 8
}

// AudioCapacity returns the number of payload bytes a clip with the given
// channel and frame counts can hold after the header reserve.
func AudioCapacity(channelCount, frameCount int) int {
	slots := channelCount * frameCount
	if slots <= headerBits {
		return 0
	}
	return (slots - headerBits) / 8
}
