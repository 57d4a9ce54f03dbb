package command

import (
	"switchctl/internal/encoder"
)

// Register offsets inside a channel scoped block 00 <channel> <offset>.
const (
	offTime = 0x00
	offPGM  = 0x01
	offPVW  = 0x02

	offPinPSource = 0x03
	offPinPType   = 0x04

	// Two byte parameters, written as one pair from the even offset.
	offPosH  = 0x05
	offPosV  = 0x07
	offSize  = 0x09
	offCropH = 0x0B
	offCropV = 0x0D

	offDSKMode = 0x03
	offDSKKey  = 0x04
	offDSKFill = 0x05

	offCamPan       = 0x22
	offCamTilt      = 0x23
	offCamPTSpeed   = 0x24
	offCamZoom      = 0x25
	offCamFocus     = 0x26
	offCamAutoFocus = 0x27
	offCamExposure  = 0x28
)

// DSK key modes.
const (
	modeSelfKey     = 0
	modeAlphaKey    = 1
	modeExternalKey = 2
)

var (
	offOn = []Choice{{0, "Off"}, {1, "On"}}
	disEn = []Choice{{0, "Disable"}, {1, "Enable"}}
)

func timeOption() Option {
	return number("time", "Time (sec, 0.0-4.0)", 0, 4, 0.1, 1.0)
}

func buildActions(c Choices) []Action {
	actions := []Action{
		pinpOnOff(c),
		pinpSettings(c),
		dskOnOff(c),
		dskAlphaKey(c),
		dskSelfKey(c),
		dskExternalKey(c),
		{
			ID:      "run_macro",
			Name:    "Run Macro",
			Options: []Option{number("macro", "Macro (1-100)", 1, 100, 1, 1)},
			emit: func(v Values) []Write {
				// 1-based in the UI, 0-based on the device.
				return []Write{write(encoder.MacroTrigger, encoder.Byte(v["macro"]-1, 0, 99))}
			},
		},
		{
			ID:   "input_assign",
			Name: "Assign Input",
			Options: []Option{
				dropdownFirst("input", "Input Channel", c.Inputs),
				dropdownFirst("assign", "Input Type", c.InputAssign),
			},
			emit: func(v Values) []Write {
				return []Write{write(encoder.Compose(0x00, v.byteOf("input")), v.byteOf("assign"))}
			},
		},
		{
			ID:   "output_assign",
			Name: "Assign Output",
			Options: []Option{
				dropdownFirst("output", "Output", c.Outputs),
				dropdownFirst("assign", "Type", c.OutputAssign),
			},
			emit: func(v Values) []Write {
				return []Write{write(encoder.Compose(0x00, v.byteOf("output")), v.byteOf("assign"))}
			},
		},
		literalAction("aux_assign", "Assign Aux",
			dropdownFirst("aux", "Aux", c.Auxes),
			dropdownFirst("assign", "Input Type", c.AuxAssign)),
		literalAction("aux_link", "Aux Link to PGM",
			dropdownFirst("aux", "Aux", c.AuxLinks),
			dropdown("link", "Link", 0, offOn)),
		{
			ID:   "pnpkey_enable",
			Name: "PnP & Key Enable/Disable",
			Options: []Option{
				dropdownFirst("pinp", "PnP/Key", c.PinPKeys),
				dropdown("enable", "Enable/Disable", 1, disEn),
			},
			emit: func(v Values) []Write {
				return []Write{write(encoder.Compose(0x00, v.byteOf("pinp")), v.byteOf("enable"))}
			},
		},
		literalAction("aux_pnpkey_enable", "Aux PnP & Key Enable/Disable",
			dropdownFirst("aux", "Aux", c.AuxPinPKeyEnable),
			dropdown("enable", "Enable/Disable", 1, append(append([]Choice{}, disEn...), Choice{2, "Always On"}))),
		fixed("set_transition_type", "Set Transition Type", encoder.TransitionType,
			dropdownFirst("type", "Transition Type", c.TransitionTypes)),
		fixed("set_mix_type", "Set Mix Type", encoder.MixType,
			dropdownFirst("type", "Mix Type", c.MixTypes)),
		fixed("set_wipe_type", "Set Wipe Type", encoder.WipeType,
			dropdownFirst("type", "Wipe Type", c.WipeTypes)),
		fixed("set_wipe_direction", "Set Wipe Direction", encoder.WipeDirection,
			dropdownFirst("direction", "Wipe Direction", c.WipeDirections)),
		channel("set_pinp_source", "Set PnP & Key Source", offPinPSource,
			dropdownFirst("pinp", "PnP/Key", c.PinPKeys),
			dropdownFirst("assign", "Input Type", c.Sources)),
		channel("set_pinp_type", "Set PnP & Key Type", offPinPType,
			dropdownFirst("pinp", "PnP/Key", c.PinPKeys),
			dropdownFirst("key", "Key Type", c.PinPTypes)),
		fixed("select_pgm", "Select PGM Source", encoder.ProgramSelect,
			dropdownFirst("input", "Input", c.Sources)),
		fixed("select_pvw", "Select PVW Source", encoder.PreviewSelect,
			dropdownFirst("input", "Input", c.Sources)),
		fixed("load_memory_trigger", "Load Memory Trigger", encoder.MemoryLoad,
			dropdownFirst("memory", "Memory", c.Memories)),
		fixed("save_memory_trigger", "Save Memory Trigger", encoder.MemorySave,
			dropdownFirst("memory", "Memory", c.Memories)),
		fixed("initialize_memory_trigger", "Initialize Memory Trigger", encoder.MemoryInitialize,
			dropdownFirst("memory", "Memory", c.Memories)),
	}

	camera := func(id, name string, off byte, value Option) Action {
		return channel(id, name, off, dropdownFirst("camera", "Camera", c.Cameras), value)
	}
	actions = append(actions,
		camera("camera_control_pan", "Camera Control - Pan", offCamPan,
			dropdownFirst("direction", "Direction", c.CameraPan)),
		camera("camera_control_tilt", "Camera Control - Tilt", offCamTilt,
			dropdownFirst("direction", "Direction", c.CameraTilt)),
		camera("camera_control_pt_speed", "Camera Control - Pan/Tilt Speed", offCamPTSpeed,
			dropdownFirst("speed", "Speed", c.CameraPanTiltSpeed)),
		camera("camera_control_zoom", "Camera Control - Zoom", offCamZoom,
			dropdownFirst("zoom", "Zoom", c.CameraZoom)),
		camera("camera_control_focus", "Camera Control - Focus", offCamFocus,
			dropdownFirst("focus", "Focus", c.CameraFocus)),
		camera("camera_control_autofocus", "Camera Control - Auto Focus", offCamAutoFocus,
			dropdown("autofocus", "Auto Focus", 0, offOn)),
		camera("camera_control_exposure", "Camera Control - Exposure", offCamExposure,
			dropdownFirst("exposure", "Exposure", c.CameraExposure)),
	)

	return actions
}

// fixed writes one value to a literal address.
func fixed(id, name string, addr encoder.Address, value Option) Action {
	return Action{
		ID:      id,
		Name:    name,
		Options: []Option{value},
		emit: func(v Values) []Write {
			return []Write{write(addr, v.byteOf(value.ID))}
		},
	}
}

// channel writes one value to 00 <selector> <off>.
func channel(id, name string, off byte, selector, value Option) Action {
	return Action{
		ID:      id,
		Name:    name,
		Options: []Option{selector, value},
		emit: func(v Values) []Write {
			return []Write{write(encoder.Compose(v.byteOf(selector.ID), off), v.byteOf(value.ID))}
		},
	}
}

// literalAction writes one value to the address carried by the selector choice.
func literalAction(id, name string, selector, value Option) Action {
	return Action{
		ID:      id,
		Name:    name,
		Options: []Option{selector, value},
		emit: func(v Values) []Write {
			addr := encoder.AddressFromUint(uint32(v[selector.ID]))
			return []Write{write(addr, v.byteOf(value.ID))}
		},
	}
}

func pinpOnOff(c Choices) Action {
	return Action{
		ID:   "pinp_on_off",
		Name: "PinP On/Off",
		Options: []Option{
			dropdown("type", "Type", 0, []Choice{{0, "PinP"}}),
			dropdown("pinp", "PinP Channel", 0x16, c.PinP),
			dropdown("pgm_state", "PGM State", 1, offOn),
			dropdown("pvw_state", "PVW State", 0, offOn),
			dropdown("source", "Source", 1, c.Sources),
			timeOption(),
		},
		emit: func(v Values) []Write {
			ch := v.byteOf("pinp")
			// Type and source land before PGM/PVW are switched.
			return []Write{
				write(encoder.Compose(ch, offPinPType), v.byteOf("type")&0x03),
				write(encoder.Compose(ch, offPinPSource), v.byteOf("source")),
				write(encoder.Compose(ch, offTime), encoder.Tenths(v["time"])),
				write(encoder.Compose(ch, offPGM), encoder.Bool(v["pgm_state"])),
				write(encoder.Compose(ch, offPVW), encoder.Bool(v["pvw_state"])),
			}
		},
	}
}

func pinpSettings(c Choices) Action {
	return Action{
		ID:   "pinp_settings",
		Name: "PinP Settings",
		Options: []Option{
			dropdown("pinp", "PinP Channel", 0x16, c.PinP),
			number("pos_h", "Position H (-100.0 .. +100.0 %)", -100, 100, 0.1, 0),
			number("pos_v", "Position V (-100.0 .. +100.0 %)", -100, 100, 0.1, 0),
			number("size", "Size (0.0 .. 100.0 %)", 0, 100, 0.1, 100),
			number("crop_h", "Cropping H (0.0 .. 100.0 %)", 0, 100, 0.1, 100),
			number("crop_v", "Cropping V (0.0 .. 100.0 %)", 0, 100, 0.1, 100),
		},
		emit: func(v Values) []Write {
			ch := v.byteOf("pinp")
			pair := func(off byte, b [2]byte) Write {
				return write(encoder.Compose(ch, off), b[0], b[1])
			}
			return []Write{
				pair(offPosH, encoder.SignedPercent(v["pos_h"])),
				pair(offPosV, encoder.SignedPercent(v["pos_v"])),
				pair(offSize, encoder.UnsignedPercent(v["size"])),
				pair(offCropH, encoder.UnsignedPercent(v["crop_h"])),
				pair(offCropV, encoder.UnsignedPercent(v["crop_v"])),
			}
		},
	}
}

func dskOnOff(c Choices) Action {
	return Action{
		ID:   "dsk_on_off",
		Name: "DSK On/Off",
		Options: []Option{
			dropdownFirst("dsk", "DSK Channel", c.DSK),
			dropdown("pgm_state", "PGM State", 1, offOn),
			dropdown("pvw_state", "PVW State", 0, offOn),
		},
		emit: func(v Values) []Write {
			ch := v.byteOf("dsk")
			return []Write{
				write(encoder.Compose(ch, offPGM), encoder.Bool(v["pgm_state"])),
				write(encoder.Compose(ch, offPVW), encoder.Bool(v["pvw_state"])),
			}
		},
	}
}

func dskMode(id, name string, mode int, label string, c Choices, sources []Option, offs []byte) Action {
	opts := []Option{
		dropdownFirst("dsk", "DSK Channel", c.DSK),
		dropdown("mode", "Mode", mode, []Choice{{mode, label}}),
	}
	opts = append(opts, sources...)
	opts = append(opts, timeOption())

	return Action{
		ID:      id,
		Name:    name,
		Options: opts,
		emit: func(v Values) []Write {
			ch := v.byteOf("dsk")
			// Mode first: the source registers are read relative to it.
			out := []Write{write(encoder.Compose(ch, offDSKMode), v.byteOf("mode"))}
			for i, o := range sources {
				out = append(out, write(encoder.Compose(ch, offs[i]), v.byteOf(o.ID)))
			}
			return append(out, write(encoder.Compose(ch, offTime), encoder.Tenths(v["time"])))
		},
	}
}

func dskAlphaKey(c Choices) Action {
	return dskMode("dsk_mode_alpha_key", "DSK Mode - Alpha Key", modeAlphaKey, "Alpha Key", c,
		[]Option{dropdown("key", "Key Source", 12, withPrefix(c.Sources, "Still"))},
		[]byte{offDSKKey})
}

func dskSelfKey(c Choices) Action {
	return dskMode("dsk_mode_self_key", "DSK Mode - Self Key", modeSelfKey, "Self Key", c,
		[]Option{dropdownFirst("fill", "Fill Source", c.Sources)},
		[]byte{offDSKFill})
}

func dskExternalKey(c Choices) Action {
	return dskMode("dsk_mode_external_key", "DSK Mode - External Key", modeExternalKey, "External Key", c,
		[]Option{
			dropdownFirst("fill", "Fill Source", c.Sources),
			dropdownFirst("key", "Key Source", c.Sources),
		},
		[]byte{offDSKFill, offDSKKey})
}
