package skills

// abbreviations maps shorthand spellings to the canonical skill name.
// Lookup happens on lowercased, trimmed input.
var abbreviations = map[string]string{
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"k8s":    "kubernetes",
	"tf":     "terraform",
	"pg":     "postgresql",
	"es":     "elasticsearch",
	"ml":     "machine learning",
	"dl":     "deep learning",
	"ai":     "artificial intelligence",
	"nlp":    "natural language processing",
	"cv":     "computer vision",
	"oop":    "object oriented programming",
	"tdd":    "test driven development",
	"cicd":   "ci/cd",
	"ci":     "ci/cd",
	"iac":    "infrastructure as code",
	"gcp":    "google cloud",
	"das":    "data structures and algorithms",
	"dsa":    "data structures and algorithms",
	"pm":     "project management",
	"sre":    "site reliability engineering",
	"fe":     "frontend",
	"be":     "backend",
	"fs":     "full stack",
	"ui":     "user interface design",
	"ux":     "user experience design",
	"qa":     "quality assurance",
	"db":     "databases",
	"oauth2": "oauth",
}

// synonymGroups maps a canonical skill to alternates that count as the same
// skill during matching. The resume side of a comparison is expanded with
// these; the job side is only canonicalized.
var synonymGroups = map[string][]string{
	"javascript":         {"js", "es6", "es2015", "ecmascript"},
	"typescript":         {"ts"},
	"node.js":            {"node", "nodejs"},
	"react":              {"reactjs", "react.js"},
	"react native":       {"reactnative"},
	"vue":                {"vuejs", "vue.js"},
	"angular":            {"angularjs", "angular.js"},
	"next.js":            {"nextjs"},
	"python":             {"python3"},
	"golang":             {"go"},
	"c#":                 {"csharp", "c sharp"},
	"c++":                {"cpp", "cplusplus"},
	"java":               {"jdk", "jvm"},
	"ruby":               {"ruby on rails", "rails", "ror"},
	"php":                {"php7", "php8"},
	".net":               {"dotnet", "asp.net", "aspnet"},
	"kubernetes":         {"k8s", "kube"},
	"docker":             {"docker compose", "containerization"},
	"terraform":          {"hcl"},
	"ansible":            {"ansible playbooks"},
	"aws":                {"amazon web services"},
	"google cloud":       {"gcp", "google cloud platform"},
	"azure":              {"microsoft azure"},
	"postgresql":         {"postgres", "psql"},
	"mysql":              {"mariadb"},
	"mongodb":            {"mongo"},
	"elasticsearch":      {"elastic", "opensearch"},
	"kafka":              {"apache kafka"},
	"rabbitmq":           {"amqp"},
	"graphql":            {"gql"},
	"rest":               {"restful", "rest api", "rest apis", "restful api"},
	"grpc":               {"protobuf", "protocol buffers"},
	"sql":                {"tsql", "plsql"},
	"html":               {"html5"},
	"css":                {"css3", "sass", "scss", "less"},
	"ci/cd":              {"continuous integration", "continuous delivery", "continuous deployment"},
	"machine learning":   {"ml"},
	"deep learning":      {"neural networks"},
	"tensorflow":         {"tf2", "keras"},
	"pytorch":            {"torch"},
	"spark":              {"apache spark", "pyspark"},
	"hadoop":             {"hdfs", "mapreduce"},
	"airflow":            {"apache airflow"},
	"git":                {"github", "gitlab", "bitbucket"},
	"linux":              {"unix", "bash", "shell scripting"},
	"agile":              {"scrum", "kanban"},
	"microservices":      {"micro services", "service oriented architecture", "soa"},
	"serverless":         {"lambda", "cloud functions"},
	"oauth":              {"oidc", "openid connect"},
	"jenkins":            {"jenkins pipelines"},
	"prometheus":         {"prom"},
	"selenium":           {"webdriver"},
	"jest":               {"mocha", "jasmine"},
	"cypress":            {"playwright"},
	"project management": {"jira", "confluence"},
	"data engineering":   {"etl", "data pipelines"},
}

// aliasIndex is the reverse of synonymGroups, built once at init.
var aliasIndex = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string, len(synonymGroups)*3)
	for canonical, aliases := range synonymGroups {
		for _, alias := range aliases {
			idx[alias] = canonical
		}
	}
	return idx
}

// vocabulary holds additional technical terms recognized when deriving
// skills from free text. Canonical skills and their aliases are always
// recognized; this list extends coverage to terms with no synonym group.
var vocabulary = []string{
	"swift", "kotlin", "rust", "scala", "erlang", "elixir", "haskell",
	"objective-c", "perl", "r", "matlab", "flutter", "dart",
	"django", "flask", "fastapi", "spring", "spring boot", "laravel",
	"express", "svelte", "nuxt", "ember", "gatsby", "webpack", "vite",
	"oracle", "sqlite", "dynamodb", "cassandra", "neo4j", "snowflake",
	"redis", "memcached", "grafana", "pandas", "numpy", "figma",
	"bigquery", "redshift", "clickhouse", "etcd", "zookeeper", "nats",
	"sqs", "sns", "s3", "ec2", "ecs", "eks", "cloudformation", "pulumi",
	"helm", "istio", "nginx", "apache", "haproxy", "cloudflare",
	"datadog", "splunk", "new relic", "sentry", "opentelemetry",
	"pytest", "junit", "rspec", "phpunit", "testng",
	"scikit-learn", "xgboost", "hugging face", "transformers", "llm",
	"tableau", "power bi", "looker", "excel", "dbt",
	"android", "ios", "xcode", "gradle", "maven", "cmake",
	"websockets", "webrtc", "openapi", "swagger", "json", "yaml", "xml",
	"jwt", "saml", "ldap", "tls", "encryption", "penetration testing",
	"blockchain", "solidity", "web3",
	"salesforce", "sap", "servicenow", "twilio", "stripe",
}

// vocabIndex maps every recognized term, single- or multi-word, to its
// canonical form.
var vocabIndex = buildVocabIndex()

func buildVocabIndex() map[string]string {
	idx := make(map[string]string, len(vocabulary)+len(synonymGroups)*3)
	for canonical, aliases := range synonymGroups {
		idx[canonical] = canonical
		for _, alias := range aliases {
			idx[alias] = canonical
		}
	}
	for alias, canonical := range abbreviations {
		idx[alias] = canonical
		idx[canonical] = canonical
	}
	for _, term := range vocabulary {
		idx[term] = term
	}
	return idx
}
