package notify

import (
	"fmt"

	"github.com/osteele/liquid"

	"github.com/kitmedia/creator-planner/internal/domain"
)

const confirmationTemplate = `<html>
<body>
<h2>Plan confirmed</h2>
<p>Your placement plan <strong>{{ plan_id }}</strong> is confirmed.</p>
<ul>
  <li>Total spend: ${{ total_spend }}</li>
  <li>Expected conversions: {{ total_conversions }}</li>
  <li>Blended CPA: {{ blended_cpa }}</li>
</ul>
<table border="1" cellpadding="4">
  <tr><th>Creator</th><th>Tier</th><th>Spend</th><th>Conversions</th></tr>
  {% for c in creators %}
  <tr><td>{{ c.name }}</td><td>{{ c.tier }}</td><td>${{ c.spend }}</td><td>{{ c.conversions }}</td></tr>
  {% endfor %}
</table>
</body>
</html>`

// renderConfirmation builds the subject and HTML body for a
// confirmation email.
func renderConfirmation(engine *liquid.Engine, p *domain.SavedPlan) (subject, html string, err error) {
	blended := "N/A"
	if p.Plan.BlendedCPA != nil {
		blended = fmt.Sprintf("$%.2f", *p.Plan.BlendedCPA)
	}

	creators := make([]map[string]interface{}, 0, len(p.Plan.PickedCreators))
	for _, pc := range p.Plan.PickedCreators {
		creators = append(creators, map[string]interface{}{
			"name":        pc.Name,
			"tier":        int(pc.Tier),
			"spend":       fmt.Sprintf("%.2f", pc.ExpectedSpend),
			"conversions": fmt.Sprintf("%.1f", pc.ExpectedConversions),
		})
	}

	bindings := map[string]interface{}{
		"plan_id":           p.ID,
		"total_spend":       fmt.Sprintf("%.2f", p.Plan.TotalSpend),
		"total_conversions": fmt.Sprintf("%.1f", p.Plan.TotalConversions),
		"blended_cpa":       blended,
		"creators":          creators,
	}

	html, err = engine.ParseAndRenderString(confirmationTemplate, bindings)
	if err != nil {
		return "", "", err
	}
	subject = fmt.Sprintf("Placement plan confirmed (%d creators, $%.2f)",
		len(p.Plan.PickedCreators), p.Plan.TotalSpend)
	return subject, html, nil
}
