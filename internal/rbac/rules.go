package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"course:view",
		"path:create",
		"path:view-own",
		"recommendation:create",
		"recommendation:view-own",
		"progress:save",
		"user:change_password",
	},
	"teacher": {
		"course:view",
		"course:create",
		"quiz:create",
		"attempt:ingest",
		"path:view-own",
		"path:view-all",
		"recommendation:view-all",
	},
	"admin": {
		"*", // everything
	},
}
