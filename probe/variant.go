package probe

import "fmt"

// Product names reported by Voltix devices.
const (
	ProductBoard = "Voltix Board"
	ProductProbe = "Voltix Probe"
)

// Variant is the resolved device variant.
type Variant uint8

// Known variants.
const (
	VariantBoard Variant = iota + 1
	VariantProbe
)

func (v Variant) String() string {
	switch v {
	case VariantBoard:
		return ProductBoard
	case VariantProbe:
		return ProductProbe
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// variantForProduct matches a product name exactly.
func variantForProduct(product string) (Variant, bool) {
	switch product {
	case ProductBoard:
		return VariantBoard, true
	case ProductProbe:
		return VariantProbe, true
	default:
		return 0, false
	}
}

// Operation names a probe operation.
type Operation string

// Probe operations.
const (
	OpPower           Operation = "power"
	OpFirmwareVersion Operation = "fw_version"
	OpGPIODir         Operation = "gpio_dir"
	OpGPIOSet         Operation = "gpio_set"
	OpGPIOGet         Operation = "gpio_get"
	OpBypass          Operation = "bypass"
	OpTargetSession   Operation = "target_session"
)

// Operations lists every operation in a stable order.
var Operations = []Operation{
	OpPower,
	OpFirmwareVersion,
	OpGPIODir,
	OpGPIOSet,
	OpGPIOGet,
	OpBypass,
	OpTargetSession,
}

// Supports reports whether variant v implements op.
func (v Variant) Supports(op Operation) bool {
	switch op {
	case OpPower, OpFirmwareVersion, OpTargetSession:
		return v == VariantBoard || v == VariantProbe
	}

	switch v {
	case VariantBoard:
		return op == OpBypass
	case VariantProbe:
		return op == OpGPIODir || op == OpGPIOSet || op == OpGPIOGet
	default:
		return false
	}
}

// Capabilities returns the operations v implements.
func (v Variant) Capabilities() []Operation {
	ops := make([]Operation, 0, len(Operations))
	for _, op := range Operations {
		if v.Supports(op) {
			ops = append(ops, op)
		}
	}
	return ops
}
