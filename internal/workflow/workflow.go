// Package workflow defines the order fulfillment state machine: project and
// purchase order statuses, the actions that move between them, and the role
// policy consulted before any transition. All checks live here so handlers
// and services never re-implement them.
package workflow

import (
	"backend/internal/model"
	"backend/pkg/apperror"
)

// Actor is the opaque identity every mutating operation receives. The core
// performs no credential verification; ID and Role come from the layer above.
type Actor struct {
	ID   string
	Role string
}

// Project statuses.
const (
	StatusDraftDirectory    = "draft_directory"
	StatusQuotationSent     = "quotation_sent"
	StatusQuotationApproved = "quotation_approved"
	StatusClientRevised     = "client_revised"
	StatusProformaCreated   = "proforma_created"
	StatusClientApproved    = "client_approved"
	StatusSampleDevelopment = "sample_development"
	StatusSampleCompleted   = "sample_completed"
	StatusCancelled         = "cancelled"
)

// Actions on the project workflow.
type Action string

const (
	ActionCreateItem      Action = "create_directory_item"
	ActionReviseItem      Action = "revise_directory_item"
	ActionSendQuotation   Action = "send_quotation"
	ActionRecordResponse  Action = "record_client_response"
	ActionCreateProforma  Action = "create_proforma"
	ActionApproveProforma Action = "approve_proforma"
	ActionStartSample     Action = "start_sample"
	ActionCompleteSample  Action = "complete_sample"
	ActionCancelProject   Action = "cancel_project"
	ActionRecordPayment   Action = "record_payment"
	ActionRecordRecap     Action = "record_recap"
	ActionRecordQC        Action = "record_qc"
)

// StepLabels maps each status to the human workflow step shown alongside it.
var StepLabels = map[string]string{
	StatusDraftDirectory:    "Directory Draft",
	StatusQuotationSent:     "Quotation Sent",
	StatusQuotationApproved: "Quotation Approved",
	StatusClientRevised:     "Client Revision Requested",
	StatusProformaCreated:   "Proforma Created",
	StatusClientApproved:    "Client Approved",
	StatusSampleDevelopment: "Sample Development",
	StatusSampleCompleted:   "Sample Completed",
	StatusCancelled:         "Cancelled",
}

// StepLabel returns the human label for a status, falling back to the raw
// status string.
func StepLabel(status string) string {
	if label, ok := StepLabels[status]; ok {
		return label
	}
	return status
}

// actionRoles is the declarative policy table: which roles may perform which
// action. Admin is implicitly allowed everything.
var actionRoles = map[Action][]string{
	ActionCreateItem:      {model.RoleDesigner},
	ActionReviseItem:      {model.RoleDesigner},
	ActionSendQuotation:   {model.RoleDesigner},
	ActionStartSample:     {model.RoleDesigner},
	ActionCompleteSample:  {model.RoleDesigner},
	ActionRecordResponse:  {model.RoleSales},
	ActionCreateProforma:  {model.RoleSales},
	ActionApproveProforma: {model.RoleSales},
	ActionRecordPayment:   {model.RoleSales},
	ActionCancelProject:   {model.RoleDesigner, model.RoleSales},
	ActionRecordRecap:     {model.RoleDesigner},
	ActionRecordQC:        {model.RoleDesigner},
}

// Authorize checks the policy table. It returns a permission error when the
// actor's role may not perform the action; it never silently no-ops.
func Authorize(actor Actor, action Action) error {
	if actor.Role == model.RoleAdmin {
		return nil
	}
	for _, role := range actionRoles[action] {
		if actor.Role == role {
			return nil
		}
	}
	return apperror.Permission("role %q is not allowed to %s", actor.Role, action)
}

// transitions is the project transition graph: current status → action →
// next status. An action missing from the current status's row is an invalid
// transition.
var transitions = map[string]map[Action]string{
	StatusDraftDirectory: {
		ActionSendQuotation: StatusQuotationSent,
		ActionStartSample:   StatusSampleDevelopment,
	},
	StatusQuotationSent: {
		// record_client_response resolves via ResponseStatus, not this table.
	},
	StatusClientRevised: {
		ActionSendQuotation: StatusQuotationSent,
		ActionStartSample:   StatusSampleDevelopment,
	},
	StatusQuotationApproved: {
		ActionCreateProforma: StatusProformaCreated,
	},
	StatusProformaCreated: {
		ActionApproveProforma: StatusClientApproved,
	},
	StatusSampleDevelopment: {
		ActionCompleteSample: StatusSampleCompleted,
	},
	StatusSampleCompleted: {
		ActionSendQuotation: StatusQuotationSent,
	},
}

// terminal project statuses: no action moves out of them.
var terminal = map[string]bool{
	StatusCancelled:      true,
	StatusClientApproved: true,
}

// Next validates a project transition and returns the resulting status.
func Next(current string, action Action) (string, error) {
	if action == ActionCancelProject {
		if terminal[current] {
			return "", apperror.Conflict("project in status %q cannot be cancelled", current)
		}
		return StatusCancelled, nil
	}
	next, ok := transitions[current][action]
	if !ok {
		return "", apperror.Conflict("action %s is not valid while project is in status %q", action, current)
	}
	return next, nil
}

// ResponseStatus resolves the project status that recording a client
// response yields. Only valid while the quotation is out with the client.
func ResponseStatus(current, response string) (string, error) {
	if current != StatusQuotationSent {
		return "", apperror.Conflict("cannot record a client response while project is in status %q", current)
	}
	switch response {
	case model.ResponseApproved:
		return StatusQuotationApproved, nil
	case model.ResponseRevise:
		return StatusClientRevised, nil
	case model.ResponseRejected:
		return StatusCancelled, nil
	default:
		return "", apperror.Validation("unknown client response %q", response)
	}
}

// poTransitions is the purchase order status graph.
var poTransitions = map[string][]string{
	model.POPendingDeposit:  {model.PODepositReceived, model.POCancelled},
	model.PODepositReceived: {model.POInProduction},
	model.POInProduction:    {model.POQualityControl, model.POCancelled},
	model.POQualityControl:  {model.POCompleted},
}

// NextPO validates a purchase order status transition.
func NextPO(current, target string) error {
	for _, allowed := range poTransitions[current] {
		if allowed == target {
			return nil
		}
	}
	return apperror.Conflict("purchase order cannot move from %q to %q", current, target)
}
