package registry

import "net/http"

const (
	get  = http.MethodGet
	post = http.MethodPost
	put  = http.MethodPut
	del  = http.MethodDelete
)

const api = "/api/v1/vector"

func paging() []Field {
	return []Field{
		{Name: "page", Type: Integer, In: Query, Default: "1", Usage: "Page number"},
		{Name: "per_page", Type: Integer, In: Query, Default: "15", Usage: "Items per page"},
	}
}

func with(fields []Field, more ...Field) []Field {
	return append(fields, more...)
}

func args(names ...string) []string { return names }

// Endpoints returns the built-in command table.
func Endpoints() []Descriptor {
	var d []Descriptor
	d = append(d, siteEndpoints()...)
	d = append(d, envEndpoints()...)
	d = append(d, deployEndpoints()...)
	d = append(d, dbEndpoints()...)
	d = append(d, wafEndpoints()...)
	d = append(d, accountEndpoints()...)
	d = append(d, webhookEndpoints()...)
	d = append(d,
		Descriptor{Noun: "event", Verb: "list", Short: "List account events", Method: get, Path: api + "/events", Shape: "events",
			Fields: with(paging(),
				Field{Name: "from", Type: Date, Usage: "Only events on or after this date"},
				Field{Name: "to", Type: Date, Usage: "Only events on or before this date"},
				Field{Name: "event", Usage: "Filter by event type"},
			)},
		Descriptor{Noun: "auth", Verb: "whoami", Short: "Show the user the token belongs to", Method: get, Path: api + "/user", Shape: "user"},
		Descriptor{Noun: "php-versions", Short: "List available PHP versions", Method: get, Path: api + "/php-versions", Shape: "php-versions"},
	)
	return d
}

func siteEndpoints() []Descriptor {
	site := api + "/sites/{site_id}"
	id := args("site_id")
	return []Descriptor{
		{Noun: "site", Verb: "list", Short: "List sites", Method: get, Path: api + "/sites", Shape: "sites", Fields: paging()},
		{Noun: "site", Verb: "show", Short: "Show a site", Method: get, Path: site, Args: id, Shape: "site"},
		{Noun: "site", Verb: "create", Short: "Create a site", Method: post, Path: api + "/sites", Shape: "site-created", Fields: []Field{
			{Name: "your_customer_id", Flag: "customer-id", Required: true, Usage: "Your customer identifier"},
			{Name: "dev_php_version", Flag: "php-version", Required: true, Usage: "PHP version for the dev environment"},
			{Name: "tags", Type: List, Usage: "Comma separated tags"},
		}},
		{Noun: "site", Verb: "update", Short: "Update a site", Method: put, Path: site, Args: id, Shape: "site-updated", Fields: []Field{
			{Name: "your_customer_id", Flag: "customer-id", Usage: "Your customer identifier"},
			{Name: "tags", Type: List, Usage: "Comma separated tags"},
		}},
		{Noun: "site", Verb: "delete", Short: "Delete a site", Method: del, Path: site, Args: id, Shape: "site-deleted", Confirm: true},
		{Noun: "site", Verb: "clone", Short: "Clone a site", Method: post, Path: site + "/clone", Args: id, Shape: "site-cloned", Fields: []Field{
			{Name: "your_customer_id", Flag: "customer-id", Usage: "Customer identifier for the clone"},
			{Name: "dev_php_version", Flag: "php-version", Usage: "PHP version for the clone"},
			{Name: "tags", Type: List, Usage: "Comma separated tags"},
		}},
		{Noun: "site", Verb: "suspend", Short: "Suspend a site", Method: put, Path: site + "/suspend", Args: id, Shape: "site-suspended"},
		{Noun: "site", Verb: "unsuspend", Short: "Unsuspend a site", Method: put, Path: site + "/unsuspend", Args: id, Shape: "site-unsuspended"},
		{Noun: "site", Verb: "reset-sftp-password", Short: "Reset the dev SFTP password", Method: post, Path: site + "/sftp/reset-password", Args: id, Shape: "sftp-credentials"},
		{Noun: "site", Verb: "reset-db-password", Short: "Reset the dev database password", Method: post, Path: site + "/db/reset-password", Args: id, Shape: "site-db-credentials"},
		{Noun: "site", Verb: "purge-cache", Short: "Purge the CDN cache", Method: post, Path: site + "/purge-cache", Args: id, Shape: "cache-purged", Fields: []Field{
			{Name: "cache_tag", Usage: "Purge only this cache tag"},
			{Name: "url", Usage: "Purge only this URL"},
		}},
		{Noun: "site", Verb: "logs", Short: "Query site logs", Method: get, Path: site + "/logs", Args: id, Shape: "site-logs", Fields: []Field{
			{Name: "start_time", Type: Date, Usage: "Start of the time range (ISO 8601)"},
			{Name: "end_time", Type: Date, Usage: "End of the time range (ISO 8601)"},
			{Name: "limit", Type: Integer, Usage: "Maximum number of rows"},
			{Name: "environment", Usage: "Environment name"},
			{Name: "deployment_id", Usage: "Only logs for this deployment"},
			{Name: "level", Type: Enum, Enum: []string{"debug", "info", "notice", "warning", "error", "critical", "alert", "emergency"}, Usage: "Minimum log level"},
			{Name: "cursor", Usage: "Continue from a previous cursor"},
		}},
		{Noun: "site", Verb: "wp-reconfig", Short: "Regenerate wp-config.php", Method: post, Path: site + "/wp/reconfig", Args: id, Shape: "wp-reconfigured"},

		{Noun: "site ssh-key", Verb: "list", Short: "List a site's SSH keys", Method: get, Path: site + "/ssh-keys", Args: id, Shape: "ssh-keys", Fields: paging()},
		{Noun: "site ssh-key", Verb: "add", Short: "Add an SSH key to a site", Method: post, Path: site + "/ssh-keys", Args: id, Shape: "ssh-key-added", Fields: []Field{
			{Name: "name", Required: true, Usage: "Key name"},
			{Name: "public_key", Required: true, Usage: "Public key contents"},
		}},
		{Noun: "site ssh-key", Verb: "remove", Short: "Remove an SSH key from a site", Method: del, Path: site + "/ssh-keys/{key_id}", Args: args("site_id", "key_id"), Shape: "ssh-key-removed"},
	}
}

func envEndpoints() []Descriptor {
	env := api + "/environments/{env_id}"
	id := args("env_id")
	envFields := func(create bool) []Field {
		return []Field{
			{Name: "name", Required: create, Usage: "Environment name"},
			{Name: "custom_domain", Usage: "Custom domain"},
			{Name: "php_version", Usage: "PHP version"},
			{Name: "is_production", Flag: "production", Type: Bool, Usage: "Mark as the production environment"},
			{Name: "tags", Type: List, Usage: "Comma separated tags"},
		}
	}
	return []Descriptor{
		{Noun: "env", Verb: "list", Short: "List a site's environments", Method: get, Path: api + "/sites/{site_id}/environments", Args: args("site_id"), Shape: "envs", Fields: paging()},
		{Noun: "env", Verb: "show", Short: "Show an environment", Method: get, Path: env, Args: id, Shape: "env"},
		{Noun: "env", Verb: "create", Short: "Create an environment", Method: post, Path: api + "/sites/{site_id}/environments", Args: args("site_id"), Shape: "env-created", Fields: envFields(true)},
		{Noun: "env", Verb: "update", Short: "Update an environment", Method: put, Path: env, Args: id, Shape: "env-updated", Fields: envFields(false)},
		{Noun: "env", Verb: "delete", Short: "Delete an environment", Method: del, Path: env, Args: id, Shape: "env-deleted", Confirm: true},
		{Noun: "env", Verb: "reset-db-password", Short: "Reset the environment database password", Method: post, Path: env + "/db/reset-password", Args: id, Shape: "env-db-credentials"},

		{Noun: "env secret", Verb: "list", Short: "List environment secrets", Method: get, Path: env + "/secrets", Args: id, Shape: "secrets", Fields: paging()},
		{Noun: "env secret", Verb: "show", Short: "Show a secret", Method: get, Path: api + "/secrets/{secret_id}", Args: args("secret_id"), Shape: "secret"},
		{Noun: "env secret", Verb: "create", Short: "Create a secret", Method: post, Path: env + "/secrets", Args: id, Shape: "secret-created", Fields: secretFields(true)},
		{Noun: "env secret", Verb: "update", Short: "Update a secret", Method: put, Path: api + "/secrets/{secret_id}", Args: args("secret_id"), Shape: "secret-updated", Fields: secretFields(false)},
		{Noun: "env secret", Verb: "delete", Short: "Delete a secret", Method: del, Path: api + "/secrets/{secret_id}", Args: args("secret_id"), Shape: "secret-deleted"},

		{Noun: "env db", Verb: "import", Short: "Import a SQL file (up to 50MB)", Method: post, Path: env + "/db/import", Args: id, Shape: "db-imported", Fields: directImportFields()},
		{Noun: "env db", Verb: "promote", Short: "Promote the dev database to this environment", Method: post, Path: env + "/db/promote", Args: id, Shape: "promote-started", Fields: []Field{
			{Name: "drop_tables", Type: Bool, Usage: "Drop existing tables first"},
			{Name: "disable_foreign_keys", Type: Bool, Usage: "Disable foreign key checks"},
		}},
		{Noun: "env db", Verb: "promote-status", Short: "Show a promotion's status", Method: get, Path: env + "/db/promotes/{promote_id}", Args: args("env_id", "promote_id"), Shape: "promote-status"},

		{Noun: "env db import-session", Verb: "create", Short: "Start a large import via upload URL", Method: post, Path: env + "/db/imports", Args: id, Shape: "import-session", Fields: importSessionFields()},
		{Noun: "env db import-session", Verb: "run", Short: "Run an uploaded import", Method: post, Path: env + "/db/imports/{import_id}/run", Args: args("env_id", "import_id"), Shape: "import-running"},
		{Noun: "env db import-session", Verb: "status", Short: "Show an import's status", Method: get, Path: env + "/db/imports/{import_id}", Args: args("env_id", "import_id"), Shape: "import-status"},
	}
}

func secretFields(create bool) []Field {
	return []Field{
		{Name: "key", Required: create, Usage: "Secret key"},
		{Name: "value", Required: create, Usage: "Secret value"},
		{Name: "is_secret", Flag: "no-secret", Type: Bool, Invert: true, Usage: "Store as a plain, readable variable"},
	}
}

// importSessionFields are sent for upload-URL imports; dotted names nest
// under "options".
func importSessionFields() []Field {
	return []Field{
		{Name: "filename", Usage: "Name of the SQL file"},
		{Name: "content_length", Type: Integer, Usage: "Size of the SQL file in bytes"},
		{Name: "options.drop_tables", Type: Bool, Usage: "Drop existing tables first"},
		{Name: "options.disable_foreign_keys", Type: Bool, Usage: "Disable foreign key checks"},
		{Name: "options.search_replace.from", Flag: "search-replace-from", Usage: "Search string"},
		{Name: "options.search_replace.to", Flag: "search-replace-to", Usage: "Replacement string"},
	}
}

// directImportFields upload the SQL file itself; options travel in the query.
func directImportFields() []Field {
	return []Field{
		{Name: "file", Type: File, Required: true, Usage: "Path to the SQL file"},
		{Name: "drop_tables", Type: Bool, In: Query, Usage: "Drop existing tables first"},
		{Name: "disable_foreign_keys", Type: Bool, In: Query, Usage: "Disable foreign key checks"},
		{Name: "search_replace_from", Type: String, In: Query, Usage: "Search string"},
		{Name: "search_replace_to", Type: String, In: Query, Usage: "Replacement string"},
	}
}

func deployEndpoints() []Descriptor {
	env := api + "/environments/{env_id}"
	return []Descriptor{
		{Noun: "deploy", Verb: "list", Short: "List deployments", Method: get, Path: env + "/deployments", Args: args("env_id"), Shape: "deploys", Fields: paging()},
		{Noun: "deploy", Verb: "show", Short: "Show a deployment", Method: get, Path: api + "/deployments/{deploy_id}", Args: args("deploy_id"), Shape: "deploy"},
		{Noun: "deploy", Verb: "trigger", Short: "Deploy the dev site to an environment", Method: post, Path: env + "/deployments", Args: args("env_id"), Shape: "deploy-triggered", Fields: []Field{
			{Name: "include_uploads", Type: Bool, Usage: "Include wp-content/uploads"},
			{Name: "include_database", Type: Bool, Usage: "Include the database"},
		}},
		{Noun: "deploy", Verb: "rollback", Short: "Roll an environment back", Method: post, Path: env + "/rollback", Args: args("env_id"), Shape: "deploy-rolled-back", Fields: []Field{
			{Name: "target_deployment_id", Flag: "to", Usage: "Deployment to roll back to (default: previous)"},
		}},

		{Noun: "ssl", Verb: "status", Short: "Show SSL provisioning status", Method: get, Path: env + "/ssl", Args: args("env_id"), Shape: "ssl"},
		{Noun: "ssl", Verb: "nudge", Short: "Nudge SSL provisioning", Method: post, Path: env + "/ssl/nudge", Args: args("env_id"), Shape: "ssl-nudged", Fields: []Field{
			{Name: "retry", Type: Bool, Usage: "Retry a failed provisioning"},
		}},
	}
}

func dbEndpoints() []Descriptor {
	site := api + "/sites/{site_id}"
	id := args("site_id")
	return []Descriptor{
		{Noun: "db", Verb: "import", Short: "Import a SQL file (up to 50MB)", Method: post, Path: site + "/db/import", Args: id, Shape: "db-imported", Fields: directImportFields()},

		{Noun: "db import-session", Verb: "create", Short: "Start a large import via upload URL", Method: post, Path: site + "/db/imports", Args: id, Shape: "import-session", Fields: importSessionFields()},
		{Noun: "db import-session", Verb: "run", Short: "Run an uploaded import", Method: post, Path: site + "/db/imports/{import_id}/run", Args: args("site_id", "import_id"), Shape: "import-running"},
		{Noun: "db import-session", Verb: "status", Short: "Show an import's status", Method: get, Path: site + "/db/imports/{import_id}", Args: args("site_id", "import_id"), Shape: "import-status"},

		{Noun: "db export", Verb: "create", Short: "Start a database export", Method: post, Path: site + "/db/export", Args: id, Shape: "export-created", Fields: []Field{
			{Name: "format", Usage: "Export format"},
		}},
		{Noun: "db export", Verb: "status", Short: "Show an export's status", Method: get, Path: site + "/db/exports/{export_id}", Args: args("site_id", "export_id"), Shape: "export-status"},
	}
}

func wafEndpoints() []Descriptor {
	waf := api + "/sites/{site_id}/waf"
	id := args("site_id")
	ruleFields := func(create bool) []Field {
		return []Field{
			{Name: "name", Required: create, Usage: "Rule name"},
			{Name: "description", Usage: "Rule description"},
			{Name: "request_count", Type: Integer, Required: create, Usage: "Requests allowed per timeframe"},
			{Name: "timeframe", Type: Integer, Required: create, Usage: "Timeframe in seconds"},
			{Name: "block_time", Type: Integer, Required: create, Usage: "Block duration in seconds"},
			{Name: "value", Usage: "Value to match"},
			{Name: "operator", Usage: "Match operator"},
			{Name: "variables", Type: List, Usage: "Comma separated variables to inspect"},
			{Name: "transformations", Type: List, Usage: "Comma separated transformations"},
		}
	}
	hostList := func(noun, path, shape, added, removed, what string) []Descriptor {
		return []Descriptor{
			{Noun: noun, Verb: "list", Short: "List " + what, Method: get, Path: waf + path, Args: id, Shape: shape},
			{Noun: noun, Verb: "add", Short: "Add a hostname to " + what, Method: post, Path: waf + path, Args: id, Shape: added, Fields: []Field{
				{Name: "hostname", Required: true, Usage: "Referrer hostname"},
			}},
			{Noun: noun, Verb: "remove", Short: "Remove a hostname from " + what, Method: del, Path: waf + path + "/{hostname}", Args: args("site_id", "hostname"), Shape: removed},
		}
	}

	d := []Descriptor{
		{Noun: "waf rate-limit", Verb: "list", Short: "List rate limit rules", Method: get, Path: waf + "/rate-limits", Args: id, Shape: "rate-limits"},
		{Noun: "waf rate-limit", Verb: "show", Short: "Show a rate limit rule", Method: get, Path: waf + "/rate-limits/{rule_id}", Args: args("site_id", "rule_id"), Shape: "rate-limit"},
		{Noun: "waf rate-limit", Verb: "create", Short: "Create a rate limit rule", Method: post, Path: waf + "/rate-limits", Args: id, Shape: "rate-limit-created", Fields: ruleFields(true)},
		{Noun: "waf rate-limit", Verb: "update", Short: "Update a rate limit rule", Method: put, Path: waf + "/rate-limits/{rule_id}", Args: args("site_id", "rule_id"), Shape: "rate-limit-updated", Fields: ruleFields(false)},
		{Noun: "waf rate-limit", Verb: "delete", Short: "Delete a rate limit rule", Method: del, Path: waf + "/rate-limits/{rule_id}", Args: args("site_id", "rule_id"), Shape: "rate-limit-deleted"},

		{Noun: "waf blocked-ip", Verb: "list", Short: "List blocked IPs", Method: get, Path: waf + "/blocked-ips", Args: id, Shape: "blocked-ips"},
		{Noun: "waf blocked-ip", Verb: "add", Short: "Block an IP", Method: post, Path: waf + "/blocked-ips", Args: id, Shape: "blocked-ip-added", Fields: []Field{
			{Name: "ip", Required: true, Usage: "IP address"},
		}},
		{Noun: "waf blocked-ip", Verb: "remove", Short: "Unblock an IP", Method: del, Path: waf + "/blocked-ips/{ip}", Args: args("site_id", "ip"), Shape: "blocked-ip-removed"},
	}
	d = append(d, hostList("waf blocked-referrer", "/blocked-referrers", "blocked-referrers", "blocked-referrer-added", "blocked-referrer-removed", "the referrer blocklist")...)
	d = append(d, hostList("waf allowed-referrer", "/allowed-referrers", "allowed-referrers", "allowed-referrer-added", "allowed-referrer-removed", "the referrer allowlist")...)
	return d
}

func accountEndpoints() []Descriptor {
	return []Descriptor{
		{Noun: "account", Verb: "show", Short: "Show account summary", Method: get, Path: api + "/account", Shape: "account"},

		{Noun: "account ssh-key", Verb: "list", Short: "List account SSH keys", Method: get, Path: api + "/ssh-keys", Shape: "ssh-keys", Fields: paging()},
		{Noun: "account ssh-key", Verb: "show", Short: "Show an account SSH key", Method: get, Path: api + "/ssh-keys/{key_id}", Args: args("key_id"), Shape: "ssh-key"},
		{Noun: "account ssh-key", Verb: "create", Short: "Create an account SSH key", Method: post, Path: api + "/ssh-keys", Shape: "ssh-key-created", Fields: []Field{
			{Name: "name", Required: true, Usage: "Key name"},
			{Name: "public_key", Required: true, Usage: "Public key contents"},
		}},
		{Noun: "account ssh-key", Verb: "delete", Short: "Delete an account SSH key", Method: del, Path: api + "/ssh-keys/{key_id}", Args: args("key_id"), Shape: "ssh-key-deleted"},

		{Noun: "account api-key", Verb: "list", Short: "List API keys", Method: get, Path: api + "/api-keys", Shape: "api-keys", Fields: paging()},
		{Noun: "account api-key", Verb: "create", Short: "Create an API key", Method: post, Path: api + "/api-keys", Shape: "api-key-created", Fields: []Field{
			{Name: "name", Required: true, Usage: "Key name"},
			{Name: "abilities", Type: List, Usage: "Comma separated abilities"},
			{Name: "expires_at", Type: Date, Usage: "Expiry date (ISO 8601)"},
		}},
		{Noun: "account api-key", Verb: "delete", Short: "Delete an API key", Method: del, Path: api + "/api-keys/{token_id}", Args: args("token_id"), Shape: "api-key-deleted"},

		{Noun: "account secret", Verb: "list", Short: "List global secrets", Method: get, Path: api + "/global-secrets", Shape: "global-secrets", Fields: paging()},
		{Noun: "account secret", Verb: "show", Short: "Show a global secret", Method: get, Path: api + "/global-secrets/{secret_id}", Args: args("secret_id"), Shape: "secret"},
		{Noun: "account secret", Verb: "create", Short: "Create a global secret", Method: post, Path: api + "/global-secrets", Shape: "secret-created", Fields: secretFields(true)},
		{Noun: "account secret", Verb: "update", Short: "Update a global secret", Method: put, Path: api + "/global-secrets/{secret_id}", Args: args("secret_id"), Shape: "secret-updated", Fields: secretFields(false)},
		{Noun: "account secret", Verb: "delete", Short: "Delete a global secret", Method: del, Path: api + "/global-secrets/{secret_id}", Args: args("secret_id"), Shape: "secret-deleted"},
	}
}

func webhookEndpoints() []Descriptor {
	hook := api + "/webhooks/{webhook_id}"
	id := args("webhook_id")
	return []Descriptor{
		{Noun: "webhook", Verb: "list", Short: "List webhooks", Method: get, Path: api + "/webhooks", Shape: "webhooks", Fields: paging()},
		{Noun: "webhook", Verb: "show", Short: "Show a webhook", Method: get, Path: hook, Args: id, Shape: "webhook"},
		{Noun: "webhook", Verb: "create", Short: "Create a webhook", Method: post, Path: api + "/webhooks", Shape: "webhook-created", Fields: []Field{
			{Name: "name", Required: true, Usage: "Webhook name"},
			{Name: "url", Required: true, Usage: "Delivery URL"},
			{Name: "events", Type: List, Required: true, Usage: "Comma separated event names"},
			{Name: "secret", Usage: "Signing secret"},
		}},
		{Noun: "webhook", Verb: "update", Short: "Update a webhook", Method: put, Path: hook, Args: id, Shape: "webhook-updated", Fields: []Field{
			{Name: "name", Usage: "Webhook name"},
			{Name: "url", Usage: "Delivery URL"},
			{Name: "events", Type: List, Usage: "Comma separated event names"},
			{Name: "secret", Usage: "Signing secret"},
			{Name: "enabled", Type: Bool, Usage: "Enable or disable deliveries"},
		}},
		{Noun: "webhook", Verb: "delete", Short: "Delete a webhook", Method: del, Path: hook, Args: id, Shape: "webhook-deleted"},
	}
}
