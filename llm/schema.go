// Package llm kapselt die Klassifikation über die OpenAI Chat API mit
// strukturierten Ausgaben.
package llm

import (
	"github.com/sashabaranov/go-openai/jsonschema"
)

// ScreeningResult ist die strukturierte Antwort des Abstract-Screenings.
type ScreeningResult struct {
	ShouldBeReviewed bool    `json:"should_be_analysed"`
	ConfidenceLevel  float64 `json:"confidence_level"`
	Summary          string  `json:"summary"`
}

// PaperPayload sind die Paper-Daten, die dem Screening-Modell übergeben werden.
type PaperPayload struct {
	EID      string `json:"eid"`
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
}

// PolicyAnalysis ist das Kodierungsschema für Policy-Dokumente. Die Feldnamen
// entsprechen dem Codebuch des Reviews und dürfen nicht umbenannt werden, da
// nachgelagerte Auswertungen auf den CSV-Spaltennamen basieren.
type PolicyAnalysis struct {
	Title                     string  `json:"title"`
	ImplementationPerformance string  `json:"implementation_performance"`
	PerformanceExcerpt        *string `json:"text_excerpt_for_implementation_performance,omitempty"`

	PoliticalSalience        *bool   `json:"Political_salience_or_prioritization_or_comittment_or_support,omitempty"`
	PoliticalSalienceExcerpt *string `json:"text_excerpt_for_political_salience_or_prioritization_or_comittment_or_support,omitempty"`

	CrossBoundaryIssue        *bool   `json:"cross_boundary_issue,omitempty"`
	CrossBoundaryIssueExcerpt *string `json:"text_excerpt_for_cross_boundary_issue,omitempty"`

	TheoryAndTechnology        *bool   `json:"availability_of_theory_and_technology,omitempty"`
	TheoryAndTechnologyExcerpt *string `json:"text_excerpt_for_availability_of_theory_and_technology,omitempty"`

	TargetGroupDiversity        *bool   `json:"diversity_of_target_group_behaviour,omitempty"`
	TargetGroupDiversityExcerpt *string `json:"text_excerpt_for_diversity_of_target_group_behaviour,omitempty"`

	BehavioralChange        *bool   `json:"extent_of_behavioral_change_required,omitempty"`
	BehavioralChangeExcerpt *string `json:"text_excerpt_for_extent_of_behavioral_change_required,omitempty"`

	TimingDurationSequencing *string `json:"timing_or_duration_or_sequencing,omitempty"`
	GovernmentActors         *string `json:"characteristics_of_responsible_government_actors,omitempty"`
	FeedbackResponsiveness   *string `json:"responsiveness_of_policymakers_to_feedback,omitempty"`
	ConsultationOpportunity  *string `json:"consultation_or_feedback_opportunities,omitempty"`
	ActorConflict            *string `json:"level_of_conflict_among_actors_involved,omitempty"`
	ProcessLegitimacy        *string `json:"perceived_legitimacy_of_process,omitempty"`
	IllicitInfluence         *string `json:"illicit_influence,omitempty"`
}

// screeningSchema beschreibt das JSON-Schema für das Abstract-Screening.
func screeningSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"should_be_analysed": {
				Type:        jsonschema.Boolean,
				Description: "Indicates if the paper should be analysed",
			},
			"confidence_level": {
				Type:        jsonschema.Number,
				Description: "Confidence level in the analysis decision, between 0 and 1",
			},
			"summary": {
				Type:        jsonschema.String,
				Description: "Brief summary of the analysis decision, at most 500 characters",
			},
		},
		Required: []string{"should_be_analysed", "confidence_level", "summary"},
	}
}

// excerptDescription baut den Beschreibungstext für ein Textauszug-Feld.
func excerptDescription(field, topic string) string {
	return "If " + field + " is True, then this field should be filled with the reason for the " + topic +
		", by providing a text excerpt from the policy document that explains the " + topic + "."
}

// policySchema beschreibt das JSON-Schema für die Policy-Kodierung. Die
// Feldbeschreibungen sind Teil des Prompts und stammen aus dem Codebuch.
func policySchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title": {
				Type: jsonschema.String,
			},
			"implementation_performance": {
				Type:        jsonschema.String,
				Enum:        []string{"Mixed Outcome", "Failure", "Success"},
				Description: "Performance of the policy implementation",
			},
			"text_excerpt_for_implementation_performance": {
				Type:        jsonschema.String,
				Description: "This field should be filled with the reason for the implementation performance, by providing a text excerpt from the policy document that explains the performance.",
			},
			"Political_salience_or_prioritization_or_comittment_or_support": {
				Type:        jsonschema.Boolean,
				Description: "Support/committment etc. of high-level politicians is coded with this code. Example when this would be true: The president of a country has discovered their passion for animal welfare and uses their power to motivate the government to engage in a wide variety of activities. Our animal welfare label is implemented in that context and the authors argue that the committment of the president has helped the implementation process",
			},
			"text_excerpt_for_political_salience_or_prioritization_or_comittment_or_support": {
				Type:        jsonschema.String,
				Description: excerptDescription("Political_salience_or_prioritization_or_comittment_or_support", "political salience, prioritization, committment or support"),
			},
			"cross_boundary_issue": {
				Type:        jsonschema.Boolean,
				Description: "Many policy problems span across various types of boundaries such as national borders, jurisdictions or sectoral boundaries. Example: One challenging aspect in this regard is the common separation of terrestrial and aquatic ecosystems in connectivity modeling and analysis, with most attention paid to large-scale terrestrial ecosystems. However, there will be a need to extend national corridor efforts beyond terrestrial systems, integrating freshwater and marine, especially along coastal areas.",
			},
			"text_excerpt_for_cross_boundary_issue": {
				Type:        jsonschema.String,
				Description: excerptDescription("cross_boundary_issue", "cross boundary issue"),
			},
			"availability_of_theory_and_technology": {
				Type:        jsonschema.Boolean,
				Description: "Some problems are well understood, e.g. due to well established scientific research, others are simply easy to understand. Some problems have technology readily available to solve the issue.",
			},
			"text_excerpt_for_availability_of_theory_and_technology": {
				Type:        jsonschema.String,
				Description: excerptDescription("availability_of_theory_and_technology", "availability of theory and technology"),
			},
			"diversity_of_target_group_behaviour": {
				Type:        jsonschema.Boolean,
				Description: "Return True if the behaviour of the target group is very diverse, e.g. because people have different reasons/motivations to behave in a certain manner, then it becomes more difficult to find mechanisms that address these different behaviours in a balanced way.",
			},
			"text_excerpt_for_diversity_of_target_group_behaviour": {
				Type:        jsonschema.String,
				Description: excerptDescription("diversity_of_target_group_behaviour", "diversity of target group behaviour"),
			},
			"extent_of_behavioral_change_required": {
				Type:        jsonschema.Boolean,
				Description: "Example of a case when this would be True: The prevailing technology on arable land in Altai krai entails burning harvested crop residues, and tillage operations each season (combined tillage) with various wide blades or with knife tillers that cut the roots of weeds. In order to comply with the burning ban, farmers would need to change to a form of conservation tillage, used up to now on approximately only 5 percent of the cropland in the investigated area (Belajev, 2009). Farmers would face the following difficulties in tilling residue-laden fields: (A misfit in policy to protect Russia's black soil region, p. 523)",
			},
			"text_excerpt_for_extent_of_behavioral_change_required": {
				Type:        jsonschema.String,
				Description: excerptDescription("extent_of_behavioral_change_required", "extent of behavioral change required"),
			},
			"timing_or_duration_or_sequencing": {
				Type:        jsonschema.String,
				Description: "What was the timing, duration or sequencing of the policy?",
			},
			"characteristics_of_responsible_government_actors": {
				Type:        jsonschema.String,
				Description: "What skills, beliefs, values and other personality traits to the policymakers responsible for formulation have? And how does the behaviour that results from these characteristics affect implementation?",
			},
			"responsiveness_of_policymakers_to_feedback": {
				Type:        jsonschema.String,
				Description: "Do the inputs provided through consultation and feedback mechanisms actually influence the policy formulation process or are they ignored?",
			},
			"consultation_or_feedback_opportunities": {
				Type:        jsonschema.String,
				Description: "Feedback opportunities, such as public hearings, can increase acceptance or improve the design of measures. At the same time lengthy processes of consultation might also slow down. Example: When new protected areas are designated, a transparent process with participation of the local communities will posibly reduce the resistance of those communities, even though they may no longer be able to e.g., freely hunt or use timber.",
			},
			"level_of_conflict_among_actors_involved": {
				Type:        jsonschema.String,
				Description: "Conflicts among stakeholders are influenced by different aspects such as the importance each stakeholder puts on the problem at hand, the goals to be achieved, or the tools used to achieve the goals. The larger the conflict, the more likely it is that policymakers develop an ambiguous policy statute to accomodate the different positions. Example: Taxing company profits is usually a policy area that high conflict in policy formulation. The result is a taxation that leaves a lot of opportunitiy for companies to reduce their profit through accounting methods.",
			},
			"perceived_legitimacy_of_process": {
				Type:        jsonschema.String,
				Description: "If stakeholders, especially those affected by the policy, perceive the formulation of the policy as illegitimate they may resist compliance or sabotage implementation. Example: In BSMP, the participation of government agencies was not an issue; their superiors in the ministries appointed the participants. The agencies received co-ordinated mandates that ensured that the work would become policy relevant and certain budgets to hire consultants. This broad mobilization of knowledge from sectors with different interests created legitimacy. Policy-makers and stakeholders alike were therefore more inclined to accept the results as credible. (Ecosystem-based management in Canada and Norway, p. 493)",
			},
			"illicit_influence": {
				Type:        jsonschema.String,
				Description: "These are methods of influence that are not allowed by the legal or political rules of a system (mostly corruption)",
			},
		},
		Required: []string{"title", "implementation_performance"},
	}
}
