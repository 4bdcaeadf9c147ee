package registry

// defaultTypes is the built-in metadata type table. Labels are the plural
// display names shown for type groups in the stage tree.
var defaultTypes = []MetadataType{
	{Name: "ApexClass", Label: "Apex Classes", DirectoryName: "classes", Suffix: "cls"},
	{Name: "ApexComponent", Label: "Visualforce Components", DirectoryName: "components", Suffix: "component"},
	{Name: "ApexPage", Label: "Visualforce Pages", DirectoryName: "pages", Suffix: "page"},
	{Name: "ApexTestSuite", Label: "Apex Test Suites", DirectoryName: "testSuites", Suffix: "testSuite"},
	{Name: "ApexTrigger", Label: "Apex Triggers", DirectoryName: "triggers", Suffix: "trigger"},
	{Name: "AuraDefinitionBundle", Label: "Aura Components", DirectoryName: "aura", Bundle: true},
	{Name: "CustomApplication", Label: "Custom Applications", DirectoryName: "applications", Suffix: "app"},
	{Name: "CustomField", Label: "Custom Fields", DirectoryName: "fields", Suffix: "field", Parent: "CustomObject"},
	{Name: "CustomLabels", Label: "Custom Labels", DirectoryName: "labels", Suffix: "labels"},
	{Name: "CustomMetadata", Label: "Custom Metadata Records", DirectoryName: "customMetadata", Suffix: "md"},
	{Name: "CustomObject", Label: "Custom Objects", DirectoryName: "objects", Suffix: "object"},
	{Name: "CustomTab", Label: "Tabs", DirectoryName: "tabs", Suffix: "tab"},
	{Name: "Dashboard", Label: "Dashboards", DirectoryName: "dashboards", Suffix: "dashboard", InFolder: true},
	{Name: "Document", Label: "Documents", DirectoryName: "documents", Suffix: "document", InFolder: true},
	{Name: "EmailTemplate", Label: "Email Templates", DirectoryName: "email", Suffix: "email", InFolder: true},
	{Name: "FlexiPage", Label: "Lightning Pages", DirectoryName: "flexipages", Suffix: "flexipage"},
	{Name: "Flow", Label: "Flows", DirectoryName: "flows", Suffix: "flow"},
	{Name: "Layout", Label: "Page Layouts", DirectoryName: "layouts", Suffix: "layout"},
	{Name: "LightningComponentBundle", Label: "Lightning Web Components", DirectoryName: "lwc", Bundle: true},
	{Name: "ListView", Label: "List Views", DirectoryName: "listViews", Suffix: "listView", Parent: "CustomObject"},
	{Name: "PermissionSet", Label: "Permission Sets", DirectoryName: "permissionsets", Suffix: "permissionset"},
	{Name: "Profile", Label: "Profiles", DirectoryName: "profiles", Suffix: "profile"},
	{Name: "RemoteSiteSetting", Label: "Remote Site Settings", DirectoryName: "remoteSiteSettings", Suffix: "remoteSite"},
	{Name: "Report", Label: "Reports", DirectoryName: "reports", Suffix: "report", InFolder: true},
	{Name: "StaticResource", Label: "Static Resources", DirectoryName: "staticresources", Suffix: "resource"},
	{Name: "ValidationRule", Label: "Validation Rules", DirectoryName: "validationRules", Suffix: "validationRule", Parent: "CustomObject"},
}
