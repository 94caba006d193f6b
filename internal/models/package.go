// internal/models/package.go
package models

// ArtifactKind 一次生成运行中的产物种类
type ArtifactKind string

const (
	ArtifactManifest ArtifactKind = "manifest"
	ArtifactScript   ArtifactKind = "script"
	ArtifactRegistry ArtifactKind = "registry"
	ArtifactScene    ArtifactKind = "scene"
	ArtifactImage    ArtifactKind = "image"
)

// GenerationRequest 单个产物的生成请求。请求之间相互独立、
// 不共享可变状态，可以按任意顺序并发派发
type GenerationRequest struct {
	Kind               ArtifactKind `json:"kind"`
	TaskPrompt         string       `json:"task_prompt"`
	InstructionContext string       `json:"instruction_context,omitempty"`
	Temperature        float32      `json:"temperature"`
	AspectRatio        string       `json:"aspect_ratio,omitempty"`
}

// GeneratedPackage 一次生成运行产出的完整产物集合。
// 由产生它的运行独占，下一次运行整体替换，从不合并
type GeneratedPackage struct {
	ManifestText string `json:"manifest_text"`
	ScriptText   string `json:"script_text"`
	RegistryText string `json:"registry_text,omitempty"`
	SceneText    string `json:"scene_text,omitempty"`
	ImageBytes   []byte `json:"-"`
}

// ModFile 导出边界上的一个命名文件
type ModFile struct {
	Name        string `json:"name"`
	Content     []byte `json:"-"`
	ContentType string `json:"content_type"`
}
