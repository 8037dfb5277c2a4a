package main

// ROMInfo says where the battle animation containers live in a ROM.
type ROMInfo struct {
	EfcOffset int
	SarOffset int
}

func FindROMInfo(romID string) *ROMInfo {
	switch romID {
	case "A3UJ":
		return &ROMInfo{0x01E4015C, 0x01E45C1C}
	}
	return nil
}
