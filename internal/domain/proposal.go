package domain

// ProposalData is the proposal metadata block carried on every project and
// rendered verbatim into the exported report.
type ProposalData struct {
	ProjectNumber        string `json:"project_number"`
	ClientName           string `json:"client_name"`
	Owner                string `json:"owner"`
	EngineerOfRecord     string `json:"engineer_of_record"`
	ProjectLocation      string `json:"project_location"`
	ProposalNumber       string `json:"proposal_number"`
	Revision             string `json:"revision"`
	ContractType         string `json:"contract_type"`
	DesignStage          string `json:"design_stage"`
	BidDate              string `json:"bid_date"`
	TargetStartDate      string `json:"target_start_date"`
	TargetCompletionDate string `json:"target_completion_date"`
	PreparedBy           string `json:"prepared_by"`
	ProjectManager       string `json:"project_manager"`
	Estimator            string `json:"estimator"`
	ScopeSummary         string `json:"scope_summary"`
	Assumptions          string `json:"assumptions"`
	Exclusions           string `json:"exclusions"`
}

// Touched reports whether any of the headline metadata fields are filled in.
func (p *ProposalData) Touched() bool {
	return p.ClientName != "" || p.ProjectLocation != "" || p.ProposalNumber != ""
}
