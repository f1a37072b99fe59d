// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"scholarship-workers/pkg/registry"
)

const defaultPath = "configs/activity-registry.json"

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	exportPath := exportCmd.String("path", defaultPath, "Path to registry file")

	updatePath := updateCmd.String("path", defaultPath, "Path to registry file")
	id := updateCmd.String("id", "", "Activity ID to update")
	field := updateCmd.String("field", "", "Field to update (status, version, timeout, retries, ...)")
	value := updateCmd.String("value", "", "New value for the field")

	validatePath := validateCmd.String("path", defaultPath, "Path to registry file")
	listPath := listCmd.String("path", "", "Path to registry file (built-in activities when empty)")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "export":
		_ = exportCmd.Parse(os.Args[2:])
		err = exportRegistry(*exportPath, time.Now())
		if err == nil {
			fmt.Printf("Exported %d activities to %s\n", len(registry.Builtin().Activities), *exportPath)
		}

	case "update":
		_ = updateCmd.Parse(os.Args[2:])
		if *id == "" || *field == "" || *value == "" {
			fmt.Println("Error: id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		err = updateActivity(*updatePath, *id, *field, *value, time.Now())
		if err == nil {
			fmt.Printf("Updated activity %s, field %s to %s\n", *id, *field, *value)
		}

	case "validate":
		_ = validateCmd.Parse(os.Args[2:])
		var n int
		n, err = validateRegistry(*validatePath)
		if err == nil {
			fmt.Printf("Registry validation passed. Found %d activities.\n", n)
		}

	case "list":
		_ = listCmd.Parse(os.Args[2:])
		reg := registry.Builtin()
		if *listPath != "" {
			reg, err = registry.LoadRegistry(*listPath)
		}
		if err == nil {
			for _, a := range reg.Activities {
				fmt.Printf("%-22s %-14s %-6s %s\n", a.TaskType, a.Category, a.Timeout, a.ImplementationStatus)
			}
		}

	default:
		help()
		return
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// exportRegistry writes the built-in activities to path.
func exportRegistry(path string, now time.Time) error {
	reg := registry.Builtin()
	reg.LastUpdated = now.Format(time.RFC3339)
	return reg.Save(path)
}

func updateActivity(path, id, field, value string, now time.Time) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	a, ok := reg.Find(id)
	if !ok {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "displayName":
		a.DisplayName = value
	case "description":
		a.Description = value
	case "timeout":
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		a.Timeout = value
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	reg.LastUpdated = now.Format(time.RFC3339)
	return reg.Save(path)
}

// validateRegistry checks the file on its own and against the workers this
// binary ships.
func validateRegistry(path string) (int, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return 0, err
	}
	missing, extra := registry.Diff(registry.Builtin(), reg)
	if len(missing) > 0 {
		return 0, fmt.Errorf("registry is missing activities: %v", missing)
	}
	if len(extra) > 0 {
		return 0, fmt.Errorf("registry declares activities with no worker: %v", extra)
	}
	return len(reg.Activities), nil
}

func help() {
	fmt.Println(`
Usage: registry-updater <command> [flags]

Commands:
  export    Write the built-in activities to the registry file
  update    Update an existing activity's field
  validate  Validate the registry file against the shipped workers
  list      Print activities
  help      Show this help message

Examples:
  registry-updater export -path configs/activity-registry.json
  registry-updater update -id chatbot-reply -field timeout -value 90s
  registry-updater validate -path configs/activity-registry.json`)
}
