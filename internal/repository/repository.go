package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations can live in subpackages (e.g., postgres) inside this directory.

// ErrDuplicate is returned by inserts that violate a uniqueness constraint
// (e.g., registering an email that already exists). Implementations translate
// their driver-specific error into this sentinel so services never import
// driver packages.
var ErrDuplicate = errors.New("duplicate record")
