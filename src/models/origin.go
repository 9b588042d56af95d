package models

import (
	"fmt"
	"regexp"
	"strings"
)

// OriginKind identifies the flow that created a receivable
type OriginKind string

const (
	OriginSale         OriginKind = "sale"          // Point-of-sale checkout
	OriginServiceOrder OriginKind = "service_order" // Order of service
	OriginEnvelopment  OriginKind = "envelopment"   // Envelopment job
	OriginManual       OriginKind = "manual"        // Typed in by hand
)

// Origin links a receivable to its source document
type Origin struct {
	Kind OriginKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
	// Inferred is set when the origin came from note text, not a foreign key
	Inferred bool `json:"inferred,omitempty"`
}

// ReferenceCode renders the human-readable reference shown next to a receivable
func (o Origin) ReferenceCode(receivableID string) string {
	switch o.Kind {
	case OriginSale:
		if o.ID != "" {
			return "PDV-" + o.ID
		}
		return "PDV"
	case OriginServiceOrder:
		if o.ID != "" {
			return "OS-" + o.ID
		}
		return "OS"
	case OriginEnvelopment:
		if o.ID != "" {
			return "ENV-" + o.ID
		}
		return "ENV"
	}
	return fmt.Sprintf("AR-%s", shortID(receivableID))
}

// Badge returns the origin label used in lists
func (o Origin) Badge() string {
	switch o.Kind {
	case OriginSale:
		return "Sale"
	case OriginServiceOrder:
		return "Service Order"
	case OriginEnvelopment:
		return "Envelopment"
	}
	return "Manual"
}

var (
	serviceOrderPattern = regexp.MustCompile(`\bOS\s*[#:-]?\s*(\d*)`)
	salePattern         = regexp.MustCompile(`\bPDV\s*[#:-]?\s*(\d*)`)
	envelopmentPattern  = regexp.MustCompile(`(?i)\benvelop\w*\s*[#:-]?\s*(\d*)`)
)

// ResolveOrigin picks the origin from structured foreign keys, falling back to
// note-text heuristics only for legacy records that carry none.
func ResolveOrigin(saleID, serviceOrderID, envelopmentID, notes string) Origin {
	switch {
	case serviceOrderID != "":
		return Origin{Kind: OriginServiceOrder, ID: serviceOrderID}
	case saleID != "":
		return Origin{Kind: OriginSale, ID: saleID}
	case envelopmentID != "":
		return Origin{Kind: OriginEnvelopment, ID: envelopmentID}
	}

	if m := serviceOrderPattern.FindStringSubmatch(notes); m != nil {
		return Origin{Kind: OriginServiceOrder, ID: m[1], Inferred: true}
	}
	if m := salePattern.FindStringSubmatch(notes); m != nil {
		return Origin{Kind: OriginSale, ID: m[1], Inferred: true}
	}
	if m := envelopmentPattern.FindStringSubmatch(notes); m != nil {
		return Origin{Kind: OriginEnvelopment, ID: m[1], Inferred: true}
	}

	return Origin{Kind: OriginManual}
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return strings.ToUpper(id[:8])
	}
	return strings.ToUpper(id)
}
