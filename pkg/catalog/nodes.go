package catalog

import "github.com/dukex/flowsmith/pkg/models"

func equalCondition(field string) map[string]any {
	return map[string]any{
		"string": []any{map[string]any{field + "1": "", "operation": "equal", field + "2": ""}},
	}
}

func builtinNodes() []models.NodeDescriptor {
	return []models.NodeDescriptor{
		// Triggers
		{
			Type:        "n8n-nodes-base.webhook",
			Name:        "Webhook",
			Category:    models.NodeCategoryTrigger,
			Description: "Receives data when an HTTP request is made to the webhook URL",
			Parameters:  map[string]any{"httpMethod": "GET", "path": "", "responseMode": "onReceived"},
			CommonUse:   []string{"API integrations", "Form submissions", "External system notifications"},
		},
		{
			Type:        "n8n-nodes-base.cron",
			Name:        "Schedule Trigger",
			Category:    models.NodeCategoryTrigger,
			Description: "Triggers the workflow on a schedule",
			Parameters: map[string]any{
				"rule": map[string]any{"interval": []any{map[string]any{"field": "hours", "value": 1}}},
			},
			CommonUse: []string{"Regular data sync", "Periodic reports", "Automated maintenance"},
		},
		{
			Type:        "n8n-nodes-base.manualTrigger",
			Name:        "Manual Trigger",
			Category:    models.NodeCategoryTrigger,
			Description: "Manually triggers the workflow",
			Parameters:  map[string]any{},
			CommonUse:   []string{"Testing workflows", "On-demand execution", "Manual processes"},
		},

		// Email
		{
			Type:        "n8n-nodes-base.gmail",
			Name:        "Gmail",
			Category:    models.NodeCategoryCommunication,
			Description: "Send and receive emails via Gmail",
			Parameters:  map[string]any{"operation": "send", "subject": "", "message": "", "toEmail": ""},
			Credentials: []string{"googleOAuth2Api"},
			CommonUse:   []string{"Email notifications", "Email monitoring", "Automated responses"},
		},
		{
			Type:        "n8n-nodes-base.emailReadImap",
			Name:        "Email Read (IMAP)",
			Category:    models.NodeCategoryCommunication,
			Description: "Read emails from IMAP server",
			Parameters:  map[string]any{"format": "simple", "markSeen": true},
			Credentials: []string{"imap"},
			CommonUse:   []string{"Email monitoring", "Processing attachments", "Email-based triggers"},
		},

		// Chat
		{
			Type:        "n8n-nodes-base.slack",
			Name:        "Slack",
			Category:    models.NodeCategoryCommunication,
			Description: "Send messages and interact with Slack",
			Parameters:  map[string]any{"operation": "postMessage", "channel": "", "text": ""},
			Credentials: []string{"slackApi"},
			CommonUse:   []string{"Team notifications", "Alert systems", "Status updates"},
		},
		{
			Type:        "n8n-nodes-base.discord",
			Name:        "Discord",
			Category:    models.NodeCategoryCommunication,
			Description: "Send messages to Discord channels",
			Parameters:  map[string]any{"operation": "sendMessage", "channelId": "", "content": ""},
			Credentials: []string{"discordApi"},
			CommonUse:   []string{"Community notifications", "Bot interactions", "Gaming alerts"},
		},

		// Data storage
		{
			Type:        "n8n-nodes-base.googleSheets",
			Name:        "Google Sheets",
			Category:    models.NodeCategoryData,
			Description: "Read, write and manipulate Google Sheets",
			Parameters:  map[string]any{"operation": "append", "documentId": "", "sheetName": "Sheet1"},
			Credentials: []string{"googleSheetsOAuth2Api"},
			CommonUse:   []string{"Data logging", "Report generation", "Database operations"},
		},
		{
			Type:        "n8n-nodes-base.airtable",
			Name:        "Airtable",
			Category:    models.NodeCategoryData,
			Description: "Work with Airtable databases",
			Parameters:  map[string]any{"operation": "list", "application": "", "table": ""},
			Credentials: []string{"airtableApi"},
			CommonUse:   []string{"CRM management", "Project tracking", "Content management"},
		},
		{
			Type:        "n8n-nodes-base.notion",
			Name:        "Notion",
			Category:    models.NodeCategoryData,
			Description: "Create and manage Notion pages and databases",
			Parameters:  map[string]any{"operation": "create", "resource": "page"},
			Credentials: []string{"notionApi"},
			CommonUse:   []string{"Documentation", "Knowledge base", "Project management"},
		},

		// File storage
		{
			Type:        "n8n-nodes-base.googleDrive",
			Name:        "Google Drive",
			Category:    models.NodeCategoryFile,
			Description: "Access and manage Google Drive files",
			Parameters:  map[string]any{"operation": "upload", "folderId": ""},
			Credentials: []string{"googleDriveOAuth2Api"},
			CommonUse:   []string{"File backup", "Document sharing", "File processing"},
		},
		{
			Type:        "n8n-nodes-base.dropbox",
			Name:        "Dropbox",
			Category:    models.NodeCategoryFile,
			Description: "Upload, download and manage Dropbox files",
			Parameters:  map[string]any{"operation": "upload", "remotePath": ""},
			Credentials: []string{"dropboxApi"},
			CommonUse:   []string{"File synchronization", "Backup solutions", "File sharing"},
		},

		// Flow control
		{
			Type:        "n8n-nodes-base.if",
			Name:        "IF",
			Category:    models.NodeCategoryLogic,
			Description: "Route data based on conditions",
			Parameters:  map[string]any{"conditions": equalCondition("value")},
			CommonUse:   []string{"Conditional logic", "Data filtering", "Decision trees"},
		},
		{
			Type:        "n8n-nodes-base.filter",
			Name:        "Filter",
			Category:    models.NodeCategoryLogic,
			Description: "Filter data based on conditions",
			Parameters:  map[string]any{"conditions": equalCondition("value")},
			CommonUse:   []string{"Data filtering", "Quality control", "Conditional processing"},
		},
		{
			Type:        "n8n-nodes-base.set",
			Name:        "Set",
			Category:    models.NodeCategoryLogic,
			Description: "Set values for data transformation",
			Parameters: map[string]any{
				"values": map[string]any{"string": []any{map[string]any{"name": "", "value": ""}}},
			},
			CommonUse: []string{"Data transformation", "Variable setting", "Data formatting"},
		},
		{
			Type:        "n8n-nodes-base.code",
			Name:        "Code",
			Category:    models.NodeCategoryLogic,
			Description: "Execute custom JavaScript code",
			Parameters: map[string]any{
				"mode":   "runOnceForAllItems",
				"jsCode": "// Your JavaScript code here\nreturn items;",
			},
			CommonUse: []string{"Custom logic", "Data processing", "Complex transformations"},
		},

		// HTTP
		{
			Type:        "n8n-nodes-base.httpRequest",
			Name:        "HTTP Request",
			Category:    models.NodeCategoryNetwork,
			Description: "Make HTTP requests to any URL",
			Parameters:  map[string]any{"method": "GET", "url": "", "responseFormat": "autodetect"},
			CommonUse:   []string{"API calls", "Web scraping", "External integrations"},
		},

		// CRM
		{
			Type:        "n8n-nodes-base.hubspot",
			Name:        "HubSpot",
			Category:    models.NodeCategorySales,
			Description: "Manage HubSpot CRM data",
			Parameters:  map[string]any{"operation": "create", "resource": "contact"},
			Credentials: []string{"hubspotApi"},
			CommonUse:   []string{"Lead management", "Sales automation", "Customer tracking"},
		},

		// Social
		{
			Type:        "n8n-nodes-base.twitter",
			Name:        "Twitter",
			Category:    models.NodeCategorySocial,
			Description: "Post tweets and interact with Twitter",
			Parameters:  map[string]any{"operation": "tweet", "text": ""},
			Credentials: []string{"twitterOAuth1Api"},
			CommonUse:   []string{"Social media automation", "Content sharing", "Engagement tracking"},
		},
	}
}
