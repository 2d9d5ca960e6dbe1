package dhcp

import "fmt"

// OperationName returns a human-readable name for a BOOTP op code, used by
// debug logging. Unknown codes return "NONE".
func OperationName(op uint8) string {
	switch op {
	case OpBootRequest:
		return "BOOT REQUEST"
	case OpBootReply:
		return "BOOT REPLY"
	default:
		return "NONE"
	}
}

// MessageTypeName returns a human-readable name for a DHCP message type
// (the value carried by option 53).
func MessageTypeName(t uint8) string {
	switch t {
	case MsgDiscover:
		return "DISCOVER"
	case MsgOffer:
		return "OFFER"
	case MsgRequest:
		return "REQUEST"
	case MsgDecline:
		return "DECLINE"
	case MsgAck:
		return "ACK"
	case MsgNak:
		return "NACK"
	case MsgRelease:
		return "RELEASE"
	case MsgInform:
		return "INFORM"
	default:
		return "Unknown"
	}
}

// OptionName returns a human-readable name for a subset of DHCP option
// codes relevant to PXE boot debugging. Unlisted codes return "Unknown".
func OptionName(code uint8) string {
	switch code {
	case 1:
		return "Subnet Mask"
	case 3:
		return "Router"
	case 6:
		return "Domain Name Server"
	case 15:
		return "Domain Name"
	case OptVendorSpecific:
		return "Vendor-Specific Information (PXEClient)"
	case OptMessageType:
		return "DHCP Message Type"
	case OptServerIdentifier:
		return "DHCP Server Identifier"
	case OptParameterRequestList:
		return "Parameter Request List"
	case OptMaxMessageSize:
		return "Maximum DHCP Message Size"
	case 58:
		return "Renewal Time Value"
	case 59:
		return "Rebinding Time Value"
	case OptClassIdentifier:
		return "Vendor class Identifier"
	case OptClientSystemArch:
		return "Client System Architecture"
	case OptClientNetworkID:
		return "Client Network Device Interface"
	case OptClientMachineID:
		return "UUID/GUID-based Client Identifier"
	case OptEnd:
		return "END"
	default:
		return "Unknown"
	}
}

// String renders a one-line-per-field debug dump of the datagram. Stops
// describing options at the end marker.
func (d Dgram) String() string {
	s := d.Body.String() + "\nOPTIONS:\n"
	for _, opt := range d.Options {
		if opt.Code == OptEnd {
			break
		}
		s += "---\n" + opt.String()
	}
	return s
}

// String renders the fixed header fields for packet-dump logging.
func (b Body) String() string {
	return fmt.Sprintf(
		"TYPE: %s\nNetwork type: 0x%02x\nXID: 0x%x\nClient: %s | Your: %s\nServer: %s | Gateway: %s\nClient MAC: %s\nCOOKIE: 0x%08x",
		OperationName(b.Op), b.HType, b.XID,
		ipv4Str(b.CIAddr), ipv4Str(b.YIAddr),
		ipv4Str(b.SIAddr), ipv4Str(b.GIAddr),
		macStr(b.CHAddr), b.MCookie,
	)
}

// String renders one option for packet-dump logging: its name, length and,
// for the DHCP message type option, the decoded message name instead of raw
// bytes.
func (o Option) String() string {
	s := fmt.Sprintf("OPTION %d - '%s', LENGTH: %d\n", o.Code, OptionName(o.Code), o.Length)
	if o.Code == OptMessageType && len(o.Value) == 1 {
		return s + MessageTypeName(o.Value[0])
	}
	return s + fmt.Sprintf("DATA: %v", o.Value)
}

func ipv4Str(octets [4]byte) string {
	return fmt.Sprintf("%d.%d.%d.%d", octets[0], octets[1], octets[2], octets[3])
}

func macStr(octets [16]byte) string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		octets[0], octets[1], octets[2], octets[3], octets[4], octets[5])
}
