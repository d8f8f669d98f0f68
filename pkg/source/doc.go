// Package source exposes the public contracts for obtaining raw template
// text. The engine only cares about content, not origin, so sources identify
// a location (literal string, file path, fs.FS entry, or URL) and loaders
// resolve them to text. Implementations live under internal/source;
// construction helpers live in the top-level scriptgen package.
package source
