// Package cmake drives the two CMake phases (configure and build) for a project.
// Commands are rendered as shell command lines and executed through mvdan.cc/sh so that they
// behave the same on every platform.
package cmake
