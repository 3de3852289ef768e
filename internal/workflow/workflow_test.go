package workflow

import (
	"testing"

	"backend/internal/model"
	"backend/pkg/apperror"
)

func TestAuthorize(t *testing.T) {
	designer := Actor{ID: "u1", Role: model.RoleDesigner}
	sales := Actor{ID: "u2", Role: model.RoleSales}
	admin := Actor{ID: "u3", Role: model.RoleAdmin}

	cases := []struct {
		name    string
		actor   Actor
		action  Action
		allowed bool
	}{
		{"designer sends quotation", designer, ActionSendQuotation, true},
		{"sales cannot send quotation", sales, ActionSendQuotation, false},
		{"sales records response", sales, ActionRecordResponse, true},
		{"designer cannot record response", designer, ActionRecordResponse, false},
		{"sales approves proforma", sales, ActionApproveProforma, true},
		{"designer cannot approve proforma", designer, ActionApproveProforma, false},
		{"designer records qc", designer, ActionRecordQC, true},
		{"sales cannot record qc", sales, ActionRecordQC, false},
		{"designer cancels", designer, ActionCancelProject, true},
		{"sales cancels", sales, ActionCancelProject, true},
		{"admin does anything", admin, ActionRecordResponse, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.actor, tc.action)
			if tc.allowed && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tc.allowed {
				if err == nil {
					t.Fatal("expected a permission error")
				}
				if !apperror.IsPermission(err) {
					t.Fatalf("expected permission error, got %v", err)
				}
			}
		})
	}
}

func TestHappyPathTransitions(t *testing.T) {
	status := StatusDraftDirectory

	next, err := Next(status, ActionSendQuotation)
	if err != nil || next != StatusQuotationSent {
		t.Fatalf("send quotation: got (%q, %v)", next, err)
	}

	next, err = ResponseStatus(next, model.ResponseApproved)
	if err != nil || next != StatusQuotationApproved {
		t.Fatalf("approve quotation: got (%q, %v)", next, err)
	}

	next, err = Next(next, ActionCreateProforma)
	if err != nil || next != StatusProformaCreated {
		t.Fatalf("create proforma: got (%q, %v)", next, err)
	}

	next, err = Next(next, ActionApproveProforma)
	if err != nil || next != StatusClientApproved {
		t.Fatalf("approve proforma: got (%q, %v)", next, err)
	}
}

func TestRevisionLoop(t *testing.T) {
	next, err := ResponseStatus(StatusQuotationSent, model.ResponseRevise)
	if err != nil || next != StatusClientRevised {
		t.Fatalf("revise: got (%q, %v)", next, err)
	}

	// A revised project can be quoted again.
	next, err = Next(next, ActionSendQuotation)
	if err != nil || next != StatusQuotationSent {
		t.Fatalf("re-send after revision: got (%q, %v)", next, err)
	}
}

func TestRejectionCancels(t *testing.T) {
	next, err := ResponseStatus(StatusQuotationSent, model.ResponseRejected)
	if err != nil || next != StatusCancelled {
		t.Fatalf("reject: got (%q, %v)", next, err)
	}
}

func TestResponseOutsideQuotationSent(t *testing.T) {
	if _, err := ResponseStatus(StatusDraftDirectory, model.ResponseApproved); !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUnknownResponse(t *testing.T) {
	if _, err := ResponseStatus(StatusQuotationSent, "maybe"); !apperror.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestInvalidTransitionIsConflict(t *testing.T) {
	// Creating a proforma before the quotation was approved.
	if _, err := Next(StatusDraftDirectory, ActionCreateProforma); !apperror.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCancelledProjectRejectsEveryAction(t *testing.T) {
	actions := []Action{
		ActionSendQuotation,
		ActionCreateProforma,
		ActionApproveProforma,
		ActionStartSample,
		ActionCompleteSample,
	}
	for _, action := range actions {
		if _, err := Next(StatusCancelled, action); !apperror.IsConflict(err) {
			t.Fatalf("action %s on cancelled project: expected conflict, got %v", action, err)
		}
	}
	// Cancelling twice is also a conflict.
	if _, err := Next(StatusCancelled, ActionCancelProject); !apperror.IsConflict(err) {
		t.Fatal("expected conflict cancelling a cancelled project")
	}
}

func TestCancelFromActiveStates(t *testing.T) {
	for _, status := range []string{
		StatusDraftDirectory,
		StatusQuotationSent,
		StatusQuotationApproved,
		StatusClientRevised,
		StatusProformaCreated,
		StatusSampleDevelopment,
	} {
		next, err := Next(status, ActionCancelProject)
		if err != nil || next != StatusCancelled {
			t.Fatalf("cancel from %q: got (%q, %v)", status, next, err)
		}
	}

	// client_approved is terminal.
	if _, err := Next(StatusClientApproved, ActionCancelProject); !apperror.IsConflict(err) {
		t.Fatal("expected conflict cancelling an approved project")
	}
}

func TestSampleTrack(t *testing.T) {
	next, err := Next(StatusDraftDirectory, ActionStartSample)
	if err != nil || next != StatusSampleDevelopment {
		t.Fatalf("start sample: got (%q, %v)", next, err)
	}
	next, err = Next(next, ActionCompleteSample)
	if err != nil || next != StatusSampleCompleted {
		t.Fatalf("complete sample: got (%q, %v)", next, err)
	}
	next, err = Next(next, ActionSendQuotation)
	if err != nil || next != StatusQuotationSent {
		t.Fatalf("quote after sample: got (%q, %v)", next, err)
	}
}

func TestPurchaseOrderTransitions(t *testing.T) {
	chain := []string{
		model.POPendingDeposit,
		model.PODepositReceived,
		model.POInProduction,
		model.POQualityControl,
		model.POCompleted,
	}
	for i := 0; i < len(chain)-1; i++ {
		if err := NextPO(chain[i], chain[i+1]); err != nil {
			t.Fatalf("%q → %q: %v", chain[i], chain[i+1], err)
		}
	}

	// Skipping a step is invalid.
	if err := NextPO(model.POPendingDeposit, model.POInProduction); !apperror.IsConflict(err) {
		t.Fatalf("expected conflict skipping deposit_received, got %v", err)
	}
	// Completed is terminal.
	if err := NextPO(model.POCompleted, model.POInProduction); !apperror.IsConflict(err) {
		t.Fatalf("expected conflict leaving completed, got %v", err)
	}
}

func TestStepLabelFallback(t *testing.T) {
	if got := StepLabel(StatusQuotationSent); got != "Quotation Sent" {
		t.Fatalf("got %q", got)
	}
	if got := StepLabel("unknown_status"); got != "unknown_status" {
		t.Fatalf("fallback: got %q", got)
	}
}
