package inquiries

import (
	"errors"
	"testing"

	"github.com/Spok95/catalog-bot/internal/domain/catalog"
)

func filled() Inquiry {
	return Inquiry{UserID: 1, Name: "Ali Rezaei", Phone: "09121234567", Description: "need price"}
}

func TestTargetIsExclusive(t *testing.T) {
	in := filled()
	if err := in.Target(catalog.TypeProduct, 5); err != nil {
		t.Fatalf("Target product: %v", err)
	}
	if err := in.Target(catalog.TypeService, 7); err != nil {
		t.Fatalf("Target service: %v", err)
	}
	if in.ProductID != nil {
		t.Errorf("ProductID = %d, want nil after retargeting", *in.ProductID)
	}
	if in.ServiceID == nil || *in.ServiceID != 7 {
		t.Errorf("ServiceID = %v, want 7", in.ServiceID)
	}
	if err := in.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestTargetRejectsArticles(t *testing.T) {
	in := filled()
	if err := in.Target(catalog.TypeEducational, 3); !errors.Is(err, ErrNotInquiable) {
		t.Fatalf("err = %v, want ErrNotInquiable", err)
	}
	if in.ProductID != nil || in.ServiceID != nil {
		t.Error("rejected target must not be recorded")
	}
}

func TestValidate(t *testing.T) {
	p, s := int64(1), int64(2)

	both := filled()
	both.ProductID, both.ServiceID = &p, &s
	if err := both.Validate(); !errors.Is(err, ErrBothTargets) {
		t.Errorf("both targets: err = %v, want ErrBothTargets", err)
	}

	general := filled()
	if err := general.Validate(); err != nil {
		t.Errorf("general inquiry: %v", err)
	}

	noPhone := filled()
	noPhone.Phone = ""
	if err := noPhone.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("missing phone: err = %v, want ErrMissingField", err)
	}
}
