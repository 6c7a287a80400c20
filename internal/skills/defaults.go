package skills

// DefaultConfig returns the built-in vocabulary. Each call returns fresh
// slices, so callers may extend the result freely.
func DefaultConfig() CatalogConfig {
	return CatalogConfig{
		Blacklist: []string{
			"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for",
			"of", "with", "by", "from", "up", "about", "into", "through", "during",
			"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
			"do", "does", "did", "will", "would", "should", "could", "may", "might",
			"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
			"my", "your", "his", "its", "our", "their", "this", "that", "these", "those",
			"go", "less", "as", "so", "no", "if", "can", "who", "what",
			"when", "where", "why", "how", "all", "each", "every", "both", "few",
			"more", "most", "other", "some", "such", "only", "own", "same", "than",
			"too", "very",
			// "member" would otherwise yield ember
			"ember",
			"work",
			"sample",
		},
		Education: []string{
			"bachelor", "bachelors", "master", "masters", "phd",
			"bs", "ms", "bsc", "msc", "mba",
		},
		MultiWord: []string{
			// professional, accounting, finance
			"customer service", "client service", "client relations",
			"project management", "business analysis", "data analysis",
			"financial analysis", "financial reporting", "financial statements",
			"balance sheet", "income statement", "cash flow",
			"accounts payable", "accounts receivable",
			"cost accounting", "management accounting",
			"tax preparation", "audit preparation", "budget planning",
			"risk management", "compliance management",

			// accounting standards
			"international financial reporting standards",
			"generally accepted accounting principles",
			"accounting standards for private enterprises",

			// business software
			"sap erp", "oracle erp", "microsoft dynamics",
			"salesforce crm", "workday hcm",
			"quickbooks online", "sage accounting", "xero accounting",
			"microsoft office", "google workspace", "adobe creative suite",

			// engineering
			"machine learning", "deep learning", "natural language processing",
			"data science", "data engineering", "software engineering",
			"web development", "mobile development", "full stack",
			"front end", "back end", "cloud computing", "distributed systems",
			"database design", "api design", "user experience", "user interface",

			// methodologies
			"agile methodology", "scrum methodology", "kanban methodology",
			"continuous integration", "continuous deployment",
			"test driven development",

			// support
			"call center", "call centre", "help desk", "technical support",
			"phone support", "email support", "chat support",
		},
		SingleWord: []string{
			"javascript", "typescript", "python", "java", "csharp", "ruby", "php",
			"swift", "kotlin", "golang", "scala", "perl", "bash", "powershell",

			"html", "html5", "css", "css3", "sass", "scss",
			"react", "angular", "vue", "svelte", "jquery", "redux", "webpack",
			"tailwind", "bootstrap",
			"nodejs", "express", "django", "flask", "fastapi", "laravel", "rails",

			"sql", "nosql", "mongodb", "postgresql", "mysql", "redis",
			"elasticsearch", "firebase", "dynamodb", "cassandra", "oracle",
			"pandas", "numpy", "powerbi", "tableau",

			"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins",
			"ansible", "nginx",

			"gaap", "ifrs", "aspe", "cpa", "bookkeeping", "payroll",
			"taxation", "reconciliation", "forecasting", "budgeting",
			"auditing", "compliance",

			"excel", "powerpoint", "word", "outlook",

			"leadership", "communication", "teamwork", "mentoring", "collaboration",
			"analytical", "organized", "adaptable", "bilingual", "multilingual",

			"figma", "sketch", "photoshop", "illustrator", "canva",
		},
		AutoDetectRules: []Rule{
			{Tag: "reconciliation", Triggers: []string{"reconcil"}},
			{Tag: "journal entries", Triggers: []string{"journal entries"}, Context: financeContext},
			{Tag: "payroll", Triggers: []string{"payroll"}, Context: financeContext},
			{Tag: "auditing", Triggers: []string{"audit"}, Context: financeContext},
			{Tag: "bookkeeping", Triggers: []string{"bookkeeping"}, Context: financeContext},
			{Tag: "client service", Triggers: []string{"customer", "client"}},
			{Tag: "data analysis", Triggers: []string{"data"}},
		},
	}
}

var financeContext = []string{"accounting", "finance"}

// Default builds a Catalog from DefaultConfig.
func Default() *Catalog {
	return NewCatalog(DefaultConfig())
}
