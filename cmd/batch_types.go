package cmd

import "github.com/stuttgart-things/secret-populator/internal/batch"

// BatchConfig holds configuration for the create and delete commands
type BatchConfig struct {
	Operation batch.Operation
	Count     uint64
	Prefix    string

	Interactive bool
	DryRun      bool
}

// Request converts the config into an executor request
func (c *BatchConfig) Request() batch.Request {
	return batch.Request{
		Operation: c.Operation,
		Count:     c.Count,
		Prefix:    c.Prefix,
	}
}

// verb names the operation in prompts and dry-run output
func (c *BatchConfig) verb() string {
	if c.Operation == batch.Delete {
		return "delete"
	}
	return "create"
}
