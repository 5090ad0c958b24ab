package annotations

import annotationsdomain "dealer-app-go/internal/domain/annotations"

// Descriptor maps an owner kind onto its tables. The reminder tables grew
// apart over time, so the due column and the subject joins differ per kind.
type Descriptor struct {
	Kind           annotationsdomain.OwnerKind
	OwnerTable     string
	OwnerColumn    string
	NotesTable     string
	RemindersTable string
	DueColumn      string
	// DealColumn is set when reminders may link a deal.
	DealColumn string
	// SubjectExpr renders the owner for the feed; "o" aliases the owner row.
	SubjectExpr  string
	SubjectJoins string
}

var descriptors = map[annotationsdomain.OwnerKind]Descriptor{
	annotationsdomain.KindDeal: {
		Kind:           annotationsdomain.KindDeal,
		OwnerTable:     "deals",
		OwnerColumn:    "deal_id",
		NotesTable:     "deal_notes",
		RemindersTable: "deal_reminders",
		DueColumn:      "reminder_at",
		SubjectExpr:    "TRIM(COALESCE(o.number, '') || ' ' || COALESCE(c.name, ''))",
		SubjectJoins:   "LEFT JOIN clients c ON c.id = o.client_id",
	},
	annotationsdomain.KindVehicle: {
		Kind:           annotationsdomain.KindVehicle,
		OwnerTable:     "vehicles",
		OwnerColumn:    "vehicle_id",
		NotesTable:     "vehicle_notes",
		RemindersTable: "vehicle_reminders",
		DueColumn:      "due_date",
		SubjectExpr:    "TRIM(COALESCE(o.plate, '') || ' ' || COALESCE(o.brand, '') || ' ' || COALESCE(o.model, ''))",
	},
	annotationsdomain.KindClient: {
		Kind:           annotationsdomain.KindClient,
		OwnerTable:     "clients",
		OwnerColumn:    "client_id",
		NotesTable:     "client_notes",
		RemindersTable: "client_reminders",
		DueColumn:      "due_at",
		DealColumn:     "deal_id",
		SubjectExpr:    "COALESCE(o.name, '')",
	},
	annotationsdomain.KindInvestor: {
		Kind:           annotationsdomain.KindInvestor,
		OwnerTable:     "investors",
		OwnerColumn:    "investor_id",
		NotesTable:     "investor_notes",
		RemindersTable: "investor_reminders",
		DueColumn:      "remind_on",
		SubjectExpr:    "COALESCE(o.name, '')",
	},
	annotationsdomain.KindDeposit: {
		Kind:           annotationsdomain.KindDeposit,
		OwnerTable:     "deposits",
		OwnerColumn:    "deposit_id",
		NotesTable:     "deposit_notes",
		RemindersTable: "deposit_reminders",
		DueColumn:      "fecha_recordatorio",
		SubjectExpr:    "TRIM(COALESCE(c.name, '') || ' ' || COALESCE(v.plate, ''))",
		SubjectJoins:   "LEFT JOIN clients c ON c.id = o.client_id LEFT JOIN vehicles v ON v.id = o.vehicle_id",
	},
}

func DescriptorFor(kind annotationsdomain.OwnerKind) (Descriptor, bool) {
	descriptor, ok := descriptors[kind]
	return descriptor, ok
}
