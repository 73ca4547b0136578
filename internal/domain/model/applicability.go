package model

// PlatformCheckFunc dispatches a single dictionary leaf check (href,
// item-name) to the engine registry and reports whether it matched. The
// applicability engine supplies the concrete function; dictionaries and
// language models never talk to the engine registry directly, keeping this
// package free of a dependency on internal/domain/engine.
type PlatformCheckFunc func(href, itemName string) (bool, error)

// Dictionary answers whether a named platform (a CPE-style identifier) is
// applicable, possibly by dispatching checks through check.
type Dictionary interface {
	IsNameApplicable(name string, check PlatformCheckFunc) (bool, error)
}

// LanguageModel answers whether a platform expression (a direct name or a
// "#"-prefixed reference to a named expression) is applicable, possibly by
// resolving nested dictionary checks.
type LanguageModel interface {
	IsPlatformApplicable(nameOrRef string, check PlatformCheckFunc, dict Dictionary) (bool, error)
}
