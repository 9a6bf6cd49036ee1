package classify

// builtin is the ordered template catalog. Order is the tie-break: when two
// templates score the same, the one listed first wins.
var builtin = []Definition{
	{Name: "Standup", Patterns: []string{
		`\byesterday\b`, `\btoday\b`, `\bblockers?\b`,
	}},
	{Name: "Retrospective", Patterns: []string{
		`what went well`, `what (didn'?t|did not) go well|what could be improved`, `\baction items\b`, `\bretro(spective)?\b`,
	}},
	{Name: "Sprint Planning", Patterns: []string{
		`\bsprint goals?\b`, `\bbacklog\b`, `\bstory points\b|\bestimates?\b`, `\bcapacity\b`,
	}},
	{Name: "One-on-One", Patterns: []string{
		`\b1:1\b|\bone[- ]on[- ]one\b`, `\bfeedback\b`, `\bcareer\b|\bgrowth\b`, `\bfollow[- ]ups?\b`,
	}},
	{Name: "Sales Discovery Call", Patterns: []string{
		`\bpain points?\b`, `\bbudget\b`, `\bdecision[- ]makers?\b`, `\bnext steps\b`,
	}},
	{Name: "Customer Interview", Patterns: []string{
		`\bcustomer (background|profile)\b`, `\bcurrent (solution|workflow)\b`, `\bjobs to be done\b`, `\bquotes?\b`,
	}},
	{Name: "User Research", Patterns: []string{
		`\bresearch (goals?|questions)\b`, `\bparticipants?\b`, `\bkey findings\b|\binsights\b`, `\bobservations?\b`,
	}},
	{Name: "Project Kickoff", Patterns: []string{
		`\bkick-?off\b`, `\bobjectives\b`, `\bscope\b`, `\broles (and|&) responsibilities\b|\bstakeholders\b`,
	}},
	{Name: "Brainstorm", Patterns: []string{
		`\bbrainstorm(ing)?\b`, `\bideas\b`, `\bthemes?\b`, `\bparking lot\b`,
	}},
	{Name: "Board Meeting", Patterns: []string{
		`\bboard (of directors|meeting)\b`, `\bfinancials?\b`, `\bresolutions?\b|\bmotions?\b`, `\bquorum\b`,
	}},
	{Name: "Hiring Interview", Patterns: []string{
		`\bcandidate\b`, `\bstrengths\b`, `\bconcerns\b|\bweaknesses\b`, `\b(no )?hire\b|\brecommendation\b`,
	}},
	{Name: "All Hands", Patterns: []string{
		`\ball[- ]hands\b`, `\bcompany updates?\b`, `\bannouncements?\b`, `\bq ?& ?a\b`,
	}},
	{Name: "Incident Postmortem", Patterns: []string{
		`\bincident\b`, `\broot cause\b`, `\btimeline\b`, `\bremediation\b|\bmitigation\b`,
	}},
	{Name: "Design Review", Patterns: []string{
		`\bdesign review\b`, `\bproposed design\b|\bproposal\b`, `\balternatives considered\b`, `\bopen questions\b`,
	}},
	{Name: "Quarterly Business Review", Patterns: []string{
		`\bqbr\b|\bquarterly business review\b`, `\bkpis?\b|\bmetrics\b`, `\bwins\b`, `\bnext quarter\b`,
	}},
	{Name: "Product Demo", Patterns: []string{
		`\bdemo\b`, `\bwalkthrough\b`, `\bfeature requests?\b`, `\bquestions asked\b`,
	}},
	{Name: "Weekly Team Sync", Patterns: []string{
		`\bweekly (sync|team meeting)\b`, `\bteam updates\b`, `\bpriorities\b`, `\bshout-?outs?\b`,
	}},
	{Name: "Project Status Update", Patterns: []string{
		`\b(project )?status update\b`, `\bon track\b|\bat risk\b|\boff track\b`, `\bmilestones?\b`, `\bdependencies\b`,
	}},
	{Name: "Decision Meeting", Patterns: []string{
		`\boptions considered\b`, `\bdecision\b`, `\brationale\b`, `\bdecision owner\b`,
	}},
	{Name: "Client Check-in", Patterns: []string{
		`\bclient\b`, `\baccount (health|status)\b`, `\brenewal\b`, `\bescalations?\b`,
	}},
	{Name: "Onboarding Session", Patterns: []string{
		`\bonboarding\b`, `\baccess (requests?|set ?up)\b`, `\bfirst week\b|\b30[- ]day\b`, `\bresources\b`,
	}},
	{Name: "Performance Review", Patterns: []string{
		`\bperformance review\b`, `\bself[- ]assessment\b`, `\bratings?\b`, `\bdevelopment plan\b`,
	}},
	{Name: "Investor Update", Patterns: []string{
		`\binvestors?\b`, `\brunway\b|\bburn rate\b`, `\bfundraising\b`, `\basks\b`,
	}},
	{Name: "Workshop", Patterns: []string{
		`\bworkshop\b|\btraining\b`, `\bagenda\b`, `\bexercises?\b|\bactivities\b`, `\bkey takeaways\b`,
	}},
	{Name: "AI Summary Overview", Patterns: []string{
		`\boverview\b`, `\boutline\b`, `\bshorthand bullet\b|\bkeywords\b`, `\baction items\b`,
	}},
	{Name: "Teams Meeting Recap", Patterns: []string{
		`\bmeeting recap\b`, `\bmentions?\b`, `\bfollow-up tasks\b`, `\bmeeting notes\b`,
	}},
	{Name: "Strategy Session", Patterns: []string{
		`\bstrategy\b`, `\bswot\b`, `\bvision\b`, `\broadmap\b`,
	}},
}
