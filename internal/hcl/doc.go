// Package hcl provides the HCL implementations of the synchronizer's file
// formats: the configuration file (region table) implementing config.Loader,
// and command manifests, the file-based command definition units.
//
// A command manifest is a file ending in ManifestSuffix holding exactly one
// command block. The block label is the command name and every attribute in
// the block becomes a member of the command's data document:
//
//	command "region" {
//	  description = "Show the game server for a region"
//	  options = [{
//	    type        = 3
//	    name        = "region"
//	    description = "Region identifier"
//	    required    = true
//	    choices     = [for r in regions : { name = r, value = r }]
//	  }]
//	}
//
// Expressions are evaluated with the variables passed to RegisterManifests;
// the application provides "regions", the sorted region identifiers.
package hcl
