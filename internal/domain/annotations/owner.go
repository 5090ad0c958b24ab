package annotations

// OwnerKind is the entity a note or reminder is attached to.
type OwnerKind string

const (
	KindDeal     OwnerKind = "deal"
	KindVehicle  OwnerKind = "vehicle"
	KindClient   OwnerKind = "client"
	KindInvestor OwnerKind = "investor"
	KindDeposit  OwnerKind = "deposit"
)

// Kinds lists every owner kind in feed tie-break order.
var Kinds = []OwnerKind{KindDeal, KindVehicle, KindClient, KindInvestor, KindDeposit}

var pathKinds = map[string]OwnerKind{
	"deals":     KindDeal,
	"vehicles":  KindVehicle,
	"clients":   KindClient,
	"investors": KindInvestor,
	"deposits":  KindDeposit,
}

var kindLabels = map[OwnerKind]string{
	KindDeal:     "Operación",
	KindVehicle:  "Vehículo",
	KindClient:   "Cliente",
	KindInvestor: "Inversor",
	KindDeposit:  "Depósito",
}

// ParseKind accepts both the plural path segment ("deals") and the kind itself.
func ParseKind(value string) (OwnerKind, error) {
	if kind, ok := pathKinds[value]; ok {
		return kind, nil
	}
	kind := OwnerKind(value)
	if kind.Valid() {
		return kind, nil
	}
	return "", ErrUnknownKind
}

func (k OwnerKind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

func (k OwnerKind) Label() string {
	return kindLabels[k]
}

func (k OwnerKind) order() int {
	for i, kind := range Kinds {
		if kind == k {
			return i
		}
	}
	return len(Kinds)
}
