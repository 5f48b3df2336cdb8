package registry

// Shapes returns the built-in response shapes.
func Shapes() []Shape {
	shapes := []Shape{
		// Sites
		{Name: "sites", Kind: ListShape, Root: "data", Paginated: true, Empty: "No sites found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "status", Header: "Status"},
			{Path: "your_customer_id", Header: "Customer ID"},
			{Path: "dev_domain", Header: "Dev Domain"},
		}},
		{Name: "site", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "status", Header: "Status"},
			{Path: "your_customer_id", Header: "Customer ID"},
			{Path: "dev_domain", Header: "Dev Domain"},
			{Path: "dev_php_version", Header: "Dev PHP Version"},
			{Path: "dev_db_host", Header: "Dev DB Host"},
			{Path: "dev_db_name", Header: "Dev DB Name"},
			{Path: "tags", Header: "Tags", Format: Join},
			{Path: "created_at", Header: "Created"},
			{Path: "updated_at", Header: "Updated"},
		}},
		{Name: "sftp-credentials", Kind: ObjectShape, Root: "data.dev_sftp", Columns: []Column{
			{Path: "hostname", Header: "Hostname"},
			{Path: "port", Header: "Port"},
			{Path: "username", Header: "Username"},
			{Path: "password", Header: "Password"},
		}},
		{Name: "site-db-credentials", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "dev_db_username", Header: "Username"},
			{Path: "dev_db_password", Header: "Password"},
		}},
		{Name: "site-logs", Kind: ListShape, Root: "data.logs.tables.[0].rows", Empty: "No logs available.",
			Columns: []Column{
				{Path: "[0]", Header: "Time"},
				{Path: "[1]", Header: "Message"},
				{Path: "[2]", Header: "Level"},
			},
			More: &Continuation{
				HasMore: "data.has_more",
				Cursor:  "data.cursor",
				Hint:    "More results available. Use --cursor %s to continue.",
			},
		},

		// SSH keys
		{Name: "ssh-keys", Kind: ListShape, Root: "data", Paginated: true, Empty: "No SSH keys found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "fingerprint", Header: "Fingerprint"},
			{Path: "created_at", Header: "Created"},
		}},
		{Name: "ssh-key", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "fingerprint", Header: "Fingerprint"},
			{Path: "public_key_preview", Header: "Public Key Preview"},
			{Path: "is_account_default", Header: "Account Default", Format: YesNo},
			{Path: "created_at", Header: "Created"},
		}},

		// Environments
		{Name: "envs", Kind: ListShape, Root: "data", Paginated: true, Empty: "No environments found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "status", Header: "Status"},
			{Path: "is_production", Header: "Production", Format: YesNo},
			{Path: "fqdn", Header: "FQDN"},
		}},
		{Name: "env", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "status", Header: "Status"},
			{Path: "is_production", Header: "Production", Format: YesNo},
			{Path: "php_version", Header: "PHP Version"},
			{Path: "fqdn", Header: "FQDN"},
			{Path: "custom_domain", Header: "Custom Domain"},
			{Path: "subdomain", Header: "Subdomain"},
			{Path: "tags", Header: "Tags", Format: Join},
			{Path: "created_at", Header: "Created"},
			{Path: "updated_at", Header: "Updated"},
		}},
		{Name: "env-db-credentials", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "db_username", Header: "Username"},
			{Path: "db_password", Header: "Password"},
		}},

		// Secrets
		{Name: "secrets", Kind: ListShape, Root: "data", Paginated: true, Empty: "No secrets found.", Columns: secretColumns[:5]},
		{Name: "global-secrets", Kind: ListShape, Root: "data", Paginated: true, Empty: "No global secrets found.", Columns: secretColumns[:5]},
		{Name: "secret", Kind: ObjectShape, Root: "data", Columns: secretColumns},

		// Deployments
		{Name: "deploys", Kind: ListShape, Root: "data", Paginated: true, Empty: "No deployments found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "status", Header: "Status"},
			{Path: "actor", Header: "Actor"},
			{Path: "created_at", Header: "Created"},
		}},
		{Name: "deploy", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "status", Header: "Status"},
			{Path: "actor", Header: "Actor"},
			{Path: "created_at", Header: "Created"},
			{Path: "updated_at", Header: "Updated"},
			{Path: "stdout", Header: "Stdout"},
			{Path: "stderr", Header: "Stderr"},
		}},

		// SSL
		{Name: "ssl", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "status", Header: "Status"},
			{Path: "provisioning_step", Header: "Provisioning Step"},
			{Path: "failure_reason", Header: "Failure Reason"},
			{Path: "is_production", Header: "Production", Format: YesNo},
			{Path: "custom_domain", Header: "Custom Domain"},
			{Path: "fqdn", Header: "FQDN"},
		}},

		// Database
		{Name: "import-session", Kind: ObjectShape, Root: "data",
			Columns: []Column{
				{Path: "id", Header: "Import ID"},
				{Path: "status", Header: "Status"},
				{Path: "upload_url", Header: "Upload URL"},
				{Path: "upload_expires_at", Header: "Expires"},
			},
			Footer: "\nUpload your SQL file to the URL above, then run the import-session run command with import ID {id}.",
		},
		{Name: "import-status", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "Import ID"},
			{Path: "status", Header: "Status"},
			{Path: "filename", Header: "Filename"},
			{Path: "duration_ms", Header: "Duration (ms)"},
			{Path: "error_message", Header: "Error"},
			{Path: "created_at", Header: "Created"},
			{Path: "completed_at", Header: "Completed"},
		}},
		{Name: "export-status", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "Export ID"},
			{Path: "status", Header: "Status"},
			{Path: "format", Header: "Format"},
			{Path: "size_bytes", Header: "Size (bytes)"},
			{Path: "duration_ms", Header: "Duration (ms)"},
			{Path: "error_message", Header: "Error"},
			{Path: "download_url", Header: "Download URL"},
			{Path: "download_expires_at", Header: "Download Expires"},
			{Path: "created_at", Header: "Created"},
			{Path: "completed_at", Header: "Completed"},
		}},
		{Name: "promote-status", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "Promote ID"},
			{Path: "status", Header: "Status"},
			{Path: "duration_ms", Header: "Duration (ms)"},
			{Path: "error_message", Header: "Error"},
			{Path: "created_at", Header: "Created"},
			{Path: "completed_at", Header: "Completed"},
		}},

		// WAF
		{Name: "rate-limits", Kind: ListShape, Root: "data", Empty: "No rate limit rules found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Header: "Requests/Time", Template: "{configuration.request_count}/{configuration.timeframe}s"},
			{Header: "Block Time", Template: "{configuration.block_time}s"},
		}},
		{Name: "rate-limit", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "description", Header: "Description"},
			{Path: "configuration.request_count", Header: "Request Count"},
			{Path: "configuration.timeframe", Header: "Timeframe"},
			{Path: "configuration.block_time", Header: "Block Time"},
			{Path: "configuration.value", Header: "Value"},
			{Path: "configuration.operator", Header: "Operator"},
			{Path: "configuration.variables", Header: "Variables", Format: Join},
			{Path: "configuration.transformations", Header: "Transformations", Format: Join},
		}},
		{Name: "blocked-ips", Kind: ListShape, Root: "data", Empty: "No blocked IPs found.", Columns: []Column{
			{Path: "ip", Header: "IP"},
		}},
		{Name: "blocked-referrers", Kind: ListShape, Root: "data", Empty: "No blocked referrers found.", Columns: []Column{
			{Path: "hostname", Header: "Hostname"},
		}},
		{Name: "allowed-referrers", Kind: ListShape, Root: "data", Empty: "No allowed referrers found.", Columns: []Column{
			{Path: "hostname", Header: "Hostname"},
		}},

		// Account
		{Name: "account", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "owner.name", Header: "Owner Name"},
			{Path: "owner.email", Header: "Owner Email"},
			{Path: "account.name", Header: "Account Name"},
			{Path: "account.company", Header: "Company"},
			{Path: "sites.total", Header: "Total Sites"},
			{Path: "sites.by_status.active", Header: "Active Sites"},
			{Path: "environments.total", Header: "Total Environments"},
			{Path: "environments.by_status.active", Header: "Active Environments"},
		}},
		{Name: "api-keys", Kind: ListShape, Root: "data", Paginated: true, Empty: "No API keys found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "abilities", Header: "Abilities", Format: Join},
			{Path: "last_used_at", Header: "Last Used"},
			{Path: "expires_at", Header: "Expires"},
		}},
		{Name: "api-key-created", Kind: ObjectShape, Root: "data",
			Columns: []Column{
				{Path: "name", Header: "Name"},
				{Path: "token", Header: "Token"},
				{Path: "abilities", Header: "Abilities", Format: Join},
				{Path: "expires_at", Header: "Expires"},
			},
			Footer: "\nSave this token - it won't be shown again!",
		},

		// Events and webhooks
		{Name: "events", Kind: ListShape, Root: "data", Paginated: true, Empty: "No events found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "event", Header: "Event"},
			{Path: "actor", Header: "Actor", Format: Actor},
			{Path: "resource", Header: "Resource", Format: Resource},
			{Path: "created_at", Header: "Created"},
		}},
		{Name: "webhooks", Kind: ListShape, Root: "data", Paginated: true, Empty: "No webhooks found.", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "url", Header: "URL"},
			{Path: "enabled", Header: "Enabled", Format: YesNo},
		}},
		{Name: "webhook", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "url", Header: "URL"},
			{Path: "enabled", Header: "Enabled", Format: YesNo},
			{Path: "events", Header: "Events", Format: Join},
			{Path: "has_secret", Header: "Has Secret", Format: YesNo},
			{Path: "created_at", Header: "Created"},
			{Path: "updated_at", Header: "Updated"},
		}},

		{Name: "user", Kind: ObjectShape, Root: "data", Columns: []Column{
			{Path: "id", Header: "ID"},
			{Path: "name", Header: "Name"},
			{Path: "email", Header: "Email"},
		}},

		{Name: "php-versions", Kind: ListShape, Root: "data", Empty: "No PHP versions available.", Columns: []Column{
			{Header: "PHP Version"},
		}},
	}
	return append(shapes, messageShapes()...)
}

var secretColumns = []Column{
	{Path: "id", Header: "ID"},
	{Path: "key", Header: "Key"},
	{Path: "is_secret", Header: "Secret", Format: YesNo},
	{Path: "value", Header: "Value"},
	{Path: "created_at", Header: "Created"},
	{Path: "updated_at", Header: "Updated"},
}

func messageShapes() []Shape {
	msgs := []struct{ name, root, text, footer string }{
		{"site-created", "data", "Site created: {id} ({status})", ""},
		{"site-cloned", "data", "Site clone started: {id} ({status})", ""},
		{"site-updated", "", "Site updated successfully.", ""},
		{"site-deleted", "", "Site deleted successfully.", ""},
		{"site-suspended", "", "Site suspension initiated.", ""},
		{"site-unsuspended", "", "Site unsuspension initiated.", ""},
		{"cache-purged", "", "Cache purged successfully.", ""},
		{"wp-reconfigured", "", "wp-config.php regenerated successfully.", ""},
		{"ssh-key-added", "data", "SSH key added: {name} ({id})", ""},
		{"ssh-key-created", "data", "SSH key created: {name} ({id})", ""},
		{"ssh-key-removed", "", "SSH key removed successfully.", ""},
		{"ssh-key-deleted", "", "SSH key deleted successfully.", ""},
		{"env-created", "data", "Environment created: {name} ({id})", ""},
		{"env-updated", "", "Environment updated successfully.", ""},
		{"env-deleted", "", "Environment deleted successfully.", ""},
		{"secret-created", "data", "Secret created: {key} ({id})", ""},
		{"secret-updated", "", "Secret updated successfully.", ""},
		{"secret-deleted", "", "Secret deleted successfully.", ""},
		{"deploy-triggered", "data", "Deployment triggered: {id} ({status})", ""},
		{"deploy-rolled-back", "data", "Rollback started: {id} ({status})", ""},
		{"ssl-nudged", "", "{message|SSL provisioning nudge sent.}", ""},
		{"import-running", "data", "Import started: {id} ({status})", "\nCheck progress with the import-session status command."},
		{"export-created", "data", "Export started: {id} ({status})", "\nCheck status with the db export status command using export ID {id}."},
		{"promote-started", "data", "Promotion started: {id} ({status})", ""},
		{"rate-limit-created", "data", "Rate limit created: {name} (ID: {id})", ""},
		{"rate-limit-updated", "", "Rate limit updated successfully.", ""},
		{"rate-limit-deleted", "", "Rate limit deleted successfully.", ""},
		{"blocked-ip-added", "", "IP {ip} added to blocklist.", ""},
		{"blocked-ip-removed", "", "IP {ip} removed from blocklist.", ""},
		{"blocked-referrer-added", "", "Referrer {hostname} added to blocklist.", ""},
		{"blocked-referrer-removed", "", "Referrer {hostname} removed from blocklist.", ""},
		{"allowed-referrer-added", "", "Referrer {hostname} added to allowlist.", ""},
		{"allowed-referrer-removed", "", "Referrer {hostname} removed from allowlist.", ""},
		{"api-key-deleted", "", "API key deleted successfully.", ""},
		{"webhook-created", "data", "Webhook created: {name} ({id})", ""},
		{"webhook-updated", "", "Webhook updated successfully.", ""},
		{"webhook-deleted", "", "Webhook deleted successfully.", ""},
	}

	shapes := make([]Shape, 0, len(msgs))
	for _, m := range msgs {
		shapes = append(shapes, Shape{
			Name:    m.name,
			Kind:    MessageShape,
			Root:    m.root,
			Message: m.text,
			Footer:  m.footer,
		})
	}
	// Direct imports answer 200 with success=false when the SQL fails.
	shapes = append(shapes, Shape{
		Name:    "db-imported",
		Kind:    MessageShape,
		Root:    "data",
		Message: "Database imported successfully ({duration_ms|0}ms).",
		Success: "success",
		Failure: "{error|Import failed}",
	})
	return shapes
}
