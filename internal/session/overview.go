package session

import (
	"fmt"
	"strings"

	"github.com/automate-controls/basstudio/internal/domain"
)

// Overview is the project health report data: how much of the tool's
// surface a project actually uses, plus concrete issues worth fixing.
type Overview struct {
	MetadataFieldsFilled int
	Counts               map[domain.ObjectKind]int
	EquipmentTotal       int
	TemplatedEquipment   int
	OverlayTokens        int
	OverlayLines         int
	CustomLines          int
	EstimatorAdjusted    bool
	Issues               []string
}

// Overview builds the health report for the open project.
func (s *Session) Overview() Overview {
	p := s.project
	o := Overview{
		Counts:        p.CountByKind(),
		OverlayTokens: len(p.OverlayNodes),
		OverlayLines:  len(p.OverlayLines),
		CustomLines:   len(p.CustomHourLines),
	}

	for _, field := range []string{
		p.Proposal.ProjectNumber, p.Proposal.ClientName, p.Proposal.Owner,
		p.Proposal.EngineerOfRecord, p.Proposal.ProjectLocation,
		p.Proposal.ProposalNumber, p.Proposal.Revision, p.Proposal.ContractType,
		p.Proposal.DesignStage, p.Proposal.BidDate, p.Proposal.TargetStartDate,
		p.Proposal.TargetCompletionDate, p.Proposal.PreparedBy,
		p.Proposal.ProjectManager, p.Proposal.Estimator,
	} {
		if strings.TrimSpace(field) != "" {
			o.MetadataFieldsFilled++
		}
	}

	untagged := 0
	for _, obj := range p.Objects {
		if obj.Kind != domain.KindEquipment || obj.Equipment == nil {
			continue
		}
		o.EquipmentTotal++
		if obj.Equipment.TemplateName != "" {
			o.TemplatedEquipment++
		}
		if strings.TrimSpace(obj.Equipment.Tag) == "" {
			untagged++
		}
	}

	defaults := domain.DefaultEstimatorSettings()
	o.EstimatorAdjusted = p.Estimator != defaults

	if untagged > 0 {
		o.Issues = append(o.Issues, fmt.Sprintf("%d equipment object(s) have no tag", untagged))
	}
	if p.Settings.UIScale < 0.95 || p.Settings.UIScale > 1.25 {
		o.Issues = append(o.Issues, fmt.Sprintf("ui scale %.2f is outside the recommended 0.95-1.25 range", p.Settings.UIScale))
	}
	if p.Settings.AutosaveMinutes > 15 {
		o.Issues = append(o.Issues, fmt.Sprintf("autosave interval of %d minutes risks losing work", p.Settings.AutosaveMinutes))
	}
	return o
}
