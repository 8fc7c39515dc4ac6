package domain

import "errors"

// Domain rule violations surfaced by aggregate mutations. Callers map
// these onto transport errors at the boundary.
var (
	ErrCrisisInProgress       = errors.New("cannot add a new crisis: a crisis is already in progress")
	ErrNoOpenCrisis           = errors.New("cannot add support request: no unresolved crisis")
	ErrCrisisNotFound         = errors.New("crisis not found in child's history")
	ErrSupportRequestNotFound = errors.New("support request not found in child's history")
	ErrInvalidTransition      = errors.New("invalid status transition")
)

var (
	errMultipleOpenCrises   = errors.New("invariant violated: multiple unresolved crises")
	errSupportWithoutCrisis = errors.New("invariant violated: support requests without a crisis record")
)

// ChildAggregate is the consistency boundary around one child: the child
// profile plus its crisis records, support requests and interventions.
//
// Every mutation validates its precondition, builds a new aggregate with
// the change applied and re-checks both invariants before returning it.
// A failed mutation leaves the receiver untouched; callers must persist
// the returned aggregate and discard the old reference.
type ChildAggregate struct {
	child           Child
	crises          []CrisisRecord
	supportRequests []SupportRequest
	interventions   []Intervention
}

// NewChildAggregate creates an empty aggregate around a child.
func NewChildAggregate(child Child) *ChildAggregate {
	agg, _ := newChildAggregate(child, nil, nil, nil)
	return agg
}

// ChildAggregateFromState rebuilds an aggregate from persisted state,
// rejecting stored data that violates the invariants.
func ChildAggregateFromState(child Child, crises []CrisisRecord, supportRequests []SupportRequest, interventions []Intervention) (*ChildAggregate, error) {
	return newChildAggregate(child, crises, supportRequests, interventions)
}

func newChildAggregate(child Child, crises []CrisisRecord, supportRequests []SupportRequest, interventions []Intervention) (*ChildAggregate, error) {
	agg := &ChildAggregate{
		child:           child.clone(),
		crises:          append([]CrisisRecord(nil), crises...),
		supportRequests: append([]SupportRequest(nil), supportRequests...),
		interventions:   append([]Intervention(nil), interventions...),
	}
	if err := agg.checkInvariants(); err != nil {
		return nil, err
	}
	return agg, nil
}

// checkInvariants guards every construction path. At most one crisis may
// be open, and support requests cannot exist without crisis history.
// Needing an OPEN crisis is an add-time precondition, not a standing
// invariant: resolving a crisis must not orphan the requests it spawned.
func (a *ChildAggregate) checkInvariants() error {
	open := 0
	for _, crisis := range a.crises {
		if crisis.Open() {
			open++
		}
	}
	if open > 1 {
		return errMultipleOpenCrises
	}
	if len(a.supportRequests) > 0 && len(a.crises) == 0 {
		return errSupportWithoutCrisis
	}
	return nil
}

// Child returns a copy of the child profile.
func (a *ChildAggregate) Child() Child {
	return a.child.clone()
}

// Crises returns the crisis records in insertion order.
func (a *ChildAggregate) Crises() []CrisisRecord {
	return append([]CrisisRecord(nil), a.crises...)
}

// SupportRequests returns the support requests in insertion order.
func (a *ChildAggregate) SupportRequests() []SupportRequest {
	return append([]SupportRequest(nil), a.supportRequests...)
}

// Interventions returns the interventions in insertion order.
func (a *ChildAggregate) Interventions() []Intervention {
	return append([]Intervention(nil), a.interventions...)
}

// OpenCrisis returns the first crisis still awaiting resolution.
func (a *ChildAggregate) OpenCrisis() (CrisisRecord, bool) {
	for _, crisis := range a.crises {
		if crisis.Open() {
			return crisis, true
		}
	}
	return CrisisRecord{}, false
}

// AddCrisis appends a crisis. Only one crisis may be open at a time.
func (a *ChildAggregate) AddCrisis(crisis CrisisRecord) (*ChildAggregate, error) {
	if _, open := a.OpenCrisis(); open {
		return nil, ErrCrisisInProgress
	}
	return newChildAggregate(a.child, append(a.Crises(), crisis), a.supportRequests, a.interventions)
}

// AddSupportRequest appends a support request; an open crisis must exist.
func (a *ChildAggregate) AddSupportRequest(request SupportRequest) (*ChildAggregate, error) {
	if _, open := a.OpenCrisis(); !open {
		return nil, ErrNoOpenCrisis
	}
	return newChildAggregate(a.child, a.crises, append(a.SupportRequests(), request), a.interventions)
}

// AddIntervention appends an intervention; no cross-entity precondition.
func (a *ChildAggregate) AddIntervention(intervention Intervention) (*ChildAggregate, error) {
	return newChildAggregate(a.child, a.crises, a.supportRequests, append(a.Interventions(), intervention))
}

// MarkCrisisEfficacy resolves the identified crisis with an outcome
// judgment and returns the rebuilt aggregate.
func (a *ChildAggregate) MarkCrisisEfficacy(crisisID string, effective bool) (*ChildAggregate, error) {
	crises := a.Crises()
	found := false
	for i := range crises {
		if crises[i].ID == crisisID {
			crises[i].Efficacy = &effective
			found = true
			break
		}
	}
	if !found {
		return nil, ErrCrisisNotFound
	}
	return newChildAggregate(a.child, crises, a.supportRequests, a.interventions)
}

// UpdateSupportRequestStatus advances one support request through its
// status lifecycle and returns the rebuilt aggregate.
func (a *ChildAggregate) UpdateSupportRequestStatus(requestID string, next RequestStatus) (*ChildAggregate, error) {
	requests := a.SupportRequests()
	found := false
	for i := range requests {
		if requests[i].ID == requestID {
			if err := requests[i].UpdateStatus(next); err != nil {
				return nil, err
			}
			found = true
			break
		}
	}
	if !found {
		return nil, ErrSupportRequestNotFound
	}
	return newChildAggregate(a.child, a.crises, requests, a.interventions)
}

// UpdateChild replaces the child profile, keeping the history intact.
func (a *ChildAggregate) UpdateChild(child Child) (*ChildAggregate, error) {
	return newChildAggregate(child, a.crises, a.supportRequests, a.interventions)
}
