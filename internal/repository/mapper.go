package repository

import (
	"time"

	"github.com/spec-kit/crisis-support-service/internal/domain"
)

// Row types mirror the relational schema one-to-one. The mapper keeps
// the SQL paths trivial and lets the aggregate round-trip be verified
// without a database.

type childRow struct {
	ID           string
	BirthDate    time.Time
	Severity     string
	SupportLevel string
	SchoolID     *string
}

type crisisRow struct {
	ID          string
	OccurredAt  time.Time
	Intensity   string
	Description *string
	Trigger     *string
	Efficacy    *bool
}

type supportRequestRow struct {
	ID          string
	RequestedAt time.Time
	Status      string
	Crisis      crisisRow
}

type interventionRow struct {
	ID        string
	AppliedAt time.Time
	Strategy  string
	AppliedBy string
	Outcome   *string
}

type aggregateRows struct {
	Child         childRow
	GuardianIDs   []string
	Crises        []crisisRow
	Requests      []supportRequestRow
	Interventions []interventionRow
}

func rowsFromAggregate(agg *domain.ChildAggregate) aggregateRows {
	child := agg.Child()
	rows := aggregateRows{
		Child: childRow{
			ID:           child.ID,
			BirthDate:    child.BirthDate.Date(),
			Severity:     string(child.Severity),
			SupportLevel: string(child.SupportLevel),
			SchoolID:     child.SchoolID,
		},
		GuardianIDs: child.GuardianIDs,
	}
	for _, crisis := range agg.Crises() {
		rows.Crises = append(rows.Crises, crisisRowFrom(crisis))
	}
	for _, request := range agg.SupportRequests() {
		rows.Requests = append(rows.Requests, supportRequestRow{
			ID:          request.ID,
			RequestedAt: request.RequestedAt,
			Status:      string(request.Status),
			Crisis:      crisisRowFrom(request.Crisis),
		})
	}
	for _, intervention := range agg.Interventions() {
		rows.Interventions = append(rows.Interventions, interventionRow{
			ID:        intervention.ID,
			AppliedAt: intervention.AppliedAt,
			Strategy:  intervention.Strategy,
			AppliedBy: intervention.AppliedBy,
			Outcome:   intervention.Outcome,
		})
	}
	return rows
}

func aggregateFromRows(rows aggregateRows) (*domain.ChildAggregate, error) {
	severity, err := domain.ParseSeverity(rows.Child.Severity)
	if err != nil {
		return nil, err
	}
	supportLevel, err := domain.ParseSupportLevel(rows.Child.SupportLevel)
	if err != nil {
		return nil, err
	}
	child := domain.ChildFromState(
		rows.Child.ID,
		domain.BirthDateFromState(rows.Child.BirthDate),
		severity,
		supportLevel,
		rows.Child.SchoolID,
		rows.GuardianIDs,
	)

	crises := make([]domain.CrisisRecord, 0, len(rows.Crises))
	for _, row := range rows.Crises {
		crisis, err := crisisFromRow(row)
		if err != nil {
			return nil, err
		}
		crises = append(crises, crisis)
	}

	requests := make([]domain.SupportRequest, 0, len(rows.Requests))
	for _, row := range rows.Requests {
		status, err := domain.ParseRequestStatus(row.Status)
		if err != nil {
			return nil, err
		}
		crisis, err := crisisFromRow(row.Crisis)
		if err != nil {
			return nil, err
		}
		requests = append(requests, domain.SupportRequestFromState(row.ID, row.RequestedAt, status, crisis))
	}

	interventions := make([]domain.Intervention, 0, len(rows.Interventions))
	for _, row := range rows.Interventions {
		interventions = append(interventions, domain.InterventionFromState(
			row.ID, row.AppliedAt, row.Strategy, row.AppliedBy, row.Outcome))
	}

	return domain.ChildAggregateFromState(child, crises, requests, interventions)
}

func crisisRowFrom(crisis domain.CrisisRecord) crisisRow {
	return crisisRow{
		ID:          crisis.ID,
		OccurredAt:  crisis.OccurredAt,
		Intensity:   string(crisis.Intensity),
		Description: crisis.Description,
		Trigger:     crisis.Trigger,
		Efficacy:    crisis.Efficacy,
	}
}

func crisisFromRow(row crisisRow) (domain.CrisisRecord, error) {
	intensity, err := domain.ParseCrisisIntensity(row.Intensity)
	if err != nil {
		return domain.CrisisRecord{}, err
	}
	return domain.CrisisRecordFromState(
		row.ID, row.OccurredAt, intensity, row.Description, row.Trigger, row.Efficacy), nil
}
