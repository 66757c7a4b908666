package withdraw

import (
	"encoding/json"
	"errors"
	"testing"
)

func validMobileRequest() Request {
	return Request{Provider: "MTN MoMo", Mobile: "065551234"}
}

func validWireRequest() Request {
	return Request{
		Provider: WireTransferProvider,
		Mobile:   "065551234",
		FullName: "Ama Mensah",
		Country:  "Ghana",
	}
}

// Submit bodies use the same field name ListMine responses do.
func TestRequestFieldNamesMatchResponses(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"provider": "Wave", "mobile_number": "065551234"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if req.Mobile != "065551234" {
		t.Errorf("mobile_number did not bind, got %q", req.Mobile)
	}

	out, err := json.Marshal(WithdrawalRequest{MobileNumber: "065551234"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(out, &fields); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if _, ok := fields["mobile_number"]; !ok {
		t.Errorf("response should expose mobile_number, got keys %v", fields)
	}
}

func TestCheckEligibilityBelowThreshold(t *testing.T) {
	err := CheckEligibility(4, 5)
	var insufficient *InsufficientBuyersError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientBuyersError, got %v", err)
	}
	if insufficient.Buyers != 4 || insufficient.Threshold != 5 {
		t.Errorf("error should carry buyers=4 threshold=5, got %+v", insufficient)
	}
}

func TestCheckEligibilityAtThreshold(t *testing.T) {
	if err := CheckEligibility(5, 5); err != nil {
		t.Errorf("5 buyers with threshold 5 should pass, got %v", err)
	}
}

func TestGateBuyerCheckRunsFirst(t *testing.T) {
	// A broken request must not mask the threshold failure.
	err := Gate(0, 5, Request{Provider: "nope"})
	var insufficient *InsufficientBuyersError
	if !errors.As(err, &insufficient) {
		t.Fatalf("buyer check should fail first, got %v", err)
	}
}

func TestValidateRequestUnknownProvider(t *testing.T) {
	if err := ValidateRequest(Request{Provider: "PayPal", Mobile: "065551234"}); !errors.Is(err, ErrUnknownProvider) {
		t.Errorf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestValidateWireRequest(t *testing.T) {
	if err := ValidateRequest(validWireRequest()); err != nil {
		t.Errorf("complete wire request should pass, got %v", err)
	}

	missingCountry := validWireRequest()
	missingCountry.Country = ""
	if err := ValidateRequest(missingCountry); !errors.Is(err, ErrIncompleteWireInfo) {
		t.Errorf("missing country should fail with ErrIncompleteWireInfo even with a valid mobile, got %v", err)
	}

	missingName := validWireRequest()
	missingName.FullName = ""
	if err := ValidateRequest(missingName); !errors.Is(err, ErrIncompleteWireInfo) {
		t.Errorf("missing full name should fail with ErrIncompleteWireInfo, got %v", err)
	}

	shortRef := validWireRequest()
	shortRef.Mobile = "12345"
	if err := ValidateRequest(shortRef); !errors.Is(err, ErrIncompleteWireInfo) {
		t.Errorf("short reference number should fail with ErrIncompleteWireInfo, got %v", err)
	}
}

func TestValidateMobileRequest(t *testing.T) {
	short := validMobileRequest()
	short.Mobile = "12345"
	if err := ValidateRequest(short); !errors.Is(err, ErrInvalidMobileNumber) {
		t.Errorf("5-char mobile should fail with ErrInvalidMobileNumber, got %v", err)
	}

	exact := validMobileRequest()
	exact.Mobile = "123456"
	if err := ValidateRequest(exact); err != nil {
		t.Errorf("6-char mobile should pass, got %v", err)
	}
}

// Eligibility depends only on the live buyer count; a validated or
// refused withdrawal in the past does not enter the gate at all. This
// is the documented recurring-gate behavior, not a spend-down balance.
func TestGateIgnoresPriorWithdrawals(t *testing.T) {
	req := validMobileRequest()
	if err := Gate(6, 5, req); err != nil {
		t.Fatalf("first request should pass, got %v", err)
	}
	if err := Gate(6, 5, req); err != nil {
		t.Fatalf("a repeat request against the same buyer count should also pass, got %v", err)
	}
}
