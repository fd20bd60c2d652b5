package pipeline

import (
	"github.com/caseatlas/caseatlas/pkg/backend"
	"github.com/caseatlas/caseatlas/pkg/extract"
)

// The long-form backend answers in two passes over the full judgment:
// six marriage-profile fields, then seven asset-division fields. The
// short-form backend answers a four-field subset in a single line.
// Together the two long-form passes fill all thirteen answer columns.

const marriagePrompt = `You are a paralegal. Only consider the findings of the judge, and NOT the parties' submissions.

Based on the following case judgment text {content}, extract the following information:
1. Length of marriage till interim judgment, INCLUDING any informal separation period (in numerical form, e.g. years and months).
2. Length of marriage till interim judgment, EXCLUDING any informal separation period. If there is no separation period or it was not discussed, reply NA.
3. Number of children.
4. Wife's MONTHLY income as determined by the judge (in numerical form or a range; 0 if none; 'Undisclosed' if not discussed or not concluded).
5. Husband's MONTHLY income as determined by the judge (same rules as above).
6. Single or dual income marriage. If a party's income was deemed not substantial, name that party in brackets. Reply 'Not Discussed' if no inference can be made.

Begin with the marker '|||ANSWERS|||', then on the next line output the six values in the exact order above, separated by a tab character, with no additional text.
For example:
11 years	10 years	2	$3000	$5000	Dual

On a new line, output the marker '|||EVIDENCE|||', then on the following lines quote the EXACT, VERBATIM text from the judgment that gave you each answer, one numbered line per category. Do not add, omit, or change any words, punctuation, or formatting. If the evidence spans multiple sentences, quote them one after another within one set of quotation marks.
For example:
|||ANSWERS|||
11 years	10 years	2	$3000	$5000	Dual
|||EVIDENCE|||
1. "They were married in 1990 and divorced in 2020."
2. "The marriage broke down in 2005... The wife left the matrimonial home that year"
3. "... they have three children aged 8, 10 and 12..."
4. "The wife earned a monthly income of $3,000..."
5. "The DJ found that the husband was unemployed at the time of hearing"
6. "This was a long-term single income marriage..."
`

const divisionPrompt = `You are a paralegal. Only consider the findings of the judge, and NOT the parties' submissions.

Based on the following case judgment text {content}, extract the following information:
1. Direct Contribution of Wife (post-adjustment ratio, wife's side only), including financial contributions to assets and payments for living expenses.
2. Indirect Contribution of Wife (post-adjustment ratio, wife's side only), including household management, child-rearing, and other non-financial contributions.
3. Average Ratio (Wife). The case will usually set this out in a table; if there is no table, output 'NA'.
4. Final Ratio for the division of matrimonial assets, wife's side only, as determined by the appellate court. If there is no final ratio, output 'NA'.
5. Adjustments to the average ratio. If no adjustment was made, output '0'. If an adjustment was made, output 'Minus [number]' or 'Plus [number]'. If adjustments were not discussed, output 'NA'.
6. Reason for the adjustments or non-adjustments, as a brief technical summary of the judge's reasoning. If no reason was given, output 'NA'.
7. Custody Type after the final decision: 'Joint Custody' or 'Sole Custody'.

Begin with the marker '|||ANSWERS|||', then on the next line output the seven values in the exact order above, separated by a tab character, with no additional text.
For example:
30	60	45	55	Plus 10	Increased weightage for indirect contribution	Sole Custody

On a new line, output the marker '|||EVIDENCE|||', then on the following lines quote the EXACT, VERBATIM text from the judgment that gave you each answer, one numbered line per category. Do not add, omit, or change any words, punctuation, or formatting. For ratio answers, avoid lifting values out of tables; quote the surrounding prose instead.
`

const subsetPrompt = `Outputs should always be in a single line, separated by a tab character. You are a paralegal. Only consider the findings of the judge, and NOT the parties' submissions. Based on the following case judgment text, extract the following information:
1. Income Type: 'Single' or 'Dual' income marriage; 'Not Discussed' if not discussed.
2. Average Ratio: from the case's ratio table, or 'NA' if there is no table.
3. Final Ratio: the wife's final ratio as a percentage (e.g. '55'), or 'NA' if not discussed.
4. Adjustments: '0' if none, 'Minus [number]' or 'Plus [number]' if made, 'NA' if not discussed.
Return the data as a SINGLE line with the values separated by a TAB CHARACTER, in the exact order above.
For example: Dual	45	55	Plus 10`

// DefaultLongFormSpecs returns the two marker-protocol contracts run
// against the long-form backend, in answer-column order.
func DefaultLongFormSpecs() []extract.PromptSpec {
	return []extract.PromptSpec{
		{
			Label:          "marriage-profile",
			Backend:        backend.KindLongForm,
			ExpectedFields: 6,
			Markers:        true,
			Instructions:   marriagePrompt,
		},
		{
			Label:          "asset-division",
			Backend:        backend.KindLongForm,
			ExpectedFields: 7,
			Markers:        true,
			Instructions:   divisionPrompt,
		},
	}
}

// DefaultShortFormSpec returns the line-protocol contract run against
// the short-form backend.
func DefaultShortFormSpec() extract.PromptSpec {
	return extract.PromptSpec{
		Label:          "comparison-subset",
		Backend:        backend.KindShortForm,
		ExpectedFields: 4,
		Instructions:   subsetPrompt,
	}
}
