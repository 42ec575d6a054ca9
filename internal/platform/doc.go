// Package platform describes the AI coding assistants mush projects into.
//
// A [Tool] is static data: an identifier, a display name, the marker paths
// that reveal it in a project, and a [Provider] for each [Capability] it
// supports. A capability without a provider is unsupported; callers ask
// with [Tool.Provider] and never write to a default location.
//
// The shared providers ([GuidelinesFile], [SkillTree], [RecordFiles],
// [MCPFile]) cover every tool; the per-tool packages only choose paths,
// keys and record renderers. Providers write through a [Sink] so a run can
// target the disk or an in-memory preview.
//
// # Registry
//
// [Registry] keeps tools in registration order, which is also the order
// synchronisation writes them:
//
//	reg, err := platform.NewRegistry(claude.Tool(), cursor.Tool())
//	tools, err := reg.Resolve([]string{"cursor"})
//	detected := reg.Detect(projectRoot)
package platform
