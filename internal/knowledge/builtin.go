// ABOUTME: Built-in knowledge table compiled into the binary
// ABOUTME: Lets the service run with zero configuration; a YAML table overrides it

package knowledge

// Builtin returns the default knowledge table. Entry order matters: the
// matcher is first-match-wins, so broader keywords belong later.
func Builtin() *Table {
	table, err := NewTable(builtinEntries)
	if err != nil {
		// The builtin table is validated by tests; a failure here is a bug.
		panic("knowledge: invalid builtin table: " + err.Error())
	}
	return table
}

var builtinEntries = []Entry{
	{
		Keyword:  "travel reimbursement",
		Examples: []string{"What is our travel reimbursement policy?"},
		Response: Response{
			Answer: "Travel expenses are reimbursed through Expensify within 14 days of submission.\n\n" +
				"- Flights and hotels must be booked through TravelPerk.\n" +
				"- Meals are covered up to $75/day domestic, $100/day international.\n" +
				"- Receipts are required for anything over $25.",
			Reference: "Finance Handbook §4.2",
			Notes:     "Trips over $2,500 need manager pre-approval.",
			Sources: []SourceRef{
				{Kind: SourceNotion, Title: "Travel & Expense Policy", URL: "https://notion.so/acme/travel-expense-policy"},
				{Kind: SourceGoogleDocs, Title: "Expensify How-To", URL: "https://docs.google.com/document/d/expensify-howto"},
			},
		},
	},
	{
		// Keyed on "vendor" rather than "onboard vendor": questions phrase it
		// as "onboard a new vendor", which a two-word keyword never contains.
		Keyword:  "vendor",
		Examples: []string{"How do I onboard a new vendor?"},
		Response: Response{
			Answer: "New vendors go through procurement review before any contract is signed:\n\n" +
				"1. File a vendor request in the Procurement Portal.\n" +
				"2. Legal reviews the MSA and DPA (3–5 business days).\n" +
				"3. Security runs the vendor risk questionnaire.\n" +
				"4. Finance sets up the vendor in NetSuite.",
			Reference: "Procurement Runbook",
			Sources: []SourceRef{
				{Kind: SourceConfluence, Title: "Vendor Onboarding Checklist", URL: "https://acme.atlassian.net/wiki/vendor-onboarding"},
				{Kind: SourceNotion, Title: "Procurement Portal Guide", URL: "https://notion.so/acme/procurement-portal"},
			},
		},
	},
	{
		Keyword:  "vpn access",
		Examples: []string{"How do I get VPN access?"},
		Response: Response{
			Answer: "VPN access is granted through Okta. Install the Tailscale client from the\n" +
				"self-service portal, then sign in with your company Okta account. Access to\n" +
				"production subnets needs a separate grant from the infra team.",
			Reference: "IT Access Guide",
			Notes:     "Contractors get time-boxed VPN grants — renew via your sponsor.",
			Sources: []SourceRef{
				{Kind: SourceNotion, Title: "Remote Access Setup", URL: "https://notion.so/acme/remote-access-setup"},
			},
		},
	},
	{
		Keyword:  "hardware support",
		Examples: []string{"Who do I contact for hardware support?"},
		Response: Response{
			Answer: "For broken or lost equipment, open a ticket in the IT Helpdesk portal.\n" +
				"Loaner laptops ship within 2 business days for remote employees. Keyboards,\n" +
				"mice, and monitors under $200 can be expensed directly without a ticket.",
			Reference: "IT Helpdesk SLA",
			Sources: []SourceRef{
				{Kind: SourceConfluence, Title: "Hardware Support SLA", URL: "https://acme.atlassian.net/wiki/hardware-sla"},
				{Kind: SourceGoogleDocs, Title: "Equipment Expense Guide", URL: "https://docs.google.com/document/d/equipment-expense"},
			},
		},
	},
	{
		Keyword:  "parental leave",
		Examples: []string{"How much parental leave do we get?"},
		Response: Response{
			Answer: "All new parents get 16 weeks of fully paid leave, usable within the first\n" +
				"year. Leave can be split into up to three blocks. Coordinate dates with your\n" +
				"manager and file the request in Workday at least 30 days ahead when possible.",
			Reference: "People Ops Handbook §7",
			Sources: []SourceRef{
				{Kind: SourceNotion, Title: "Parental Leave Policy", URL: "https://notion.so/acme/parental-leave"},
			},
		},
	},
}
