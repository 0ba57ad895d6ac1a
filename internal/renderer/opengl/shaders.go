package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
}

func newSceneShader() *Shader {
	return &Shader{vertexSource: vertexShaderSource, fragmentSource: fragmentShaderSource}
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

// Compile builds and links the program. Compile and link logs are returned
// as errors.
func (shader *Shader) Compile() error {
	// Shader objects are not needed once linked, so they are always
	// unwound.
	var u unwind
	defer u.Unwind()

	vertex, err := genShader(shader.vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return err
	}
	u.Add(func() { gl.DeleteShader(vertex) })

	fragment, err := genShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return err
	}
	u.Add(func() { gl.DeleteShader(fragment) })

	program, err := genShaderProgram(vertex, fragment)
	if err != nil {
		return err
	}
	shader.program = program
	return nil
}

func (shader *Shader) Delete() {
	if shader.program != 0 {
		gl.DeleteProgram(shader.program)
		shader.program = 0
	}
}

func genShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("opengl: compile shader type %d: %s", shaderType, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func genShaderProgram(vertexShader, fragmentShader uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("opengl: link program: %s", strings.TrimRight(log, "\x00"))
	}
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	return program, nil
}

func lightUniform(i int, field string) string {
	return fmt.Sprintf("lights[%d].%s", i, field)
}

var vertexShaderSource = `#version 410 core

layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;

uniform mat4 model;
uniform mat4 viewProjection;
uniform float pointSize;

out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(transpose(inverse(model))) * inNormal;
    gl_PointSize = pointSize;
    gl_Position = viewProjection * vec4(FragPos, 1.0);
}
`

var fragmentShaderSource = `#version 410 core

#define MAX_LIGHTS 8
#define AMBIENT 0
#define DIRECTIONAL 1
#define POINT 2
#define SPOT 3

in vec3 Normal;
in vec3 FragPos;

struct Light {
    int kind;
    vec3 position;
    vec3 direction;
    vec3 color;
    float intensity;
    float range;
    float cosOuter;
    float cosInner;
};

uniform Light lights[MAX_LIGHTS];
uniform int lightCount;
uniform vec3 viewPos;
uniform vec3 diffuseColor;
uniform vec3 emissiveColor;
uniform float emissiveIntensity;
uniform float shininess;
uniform float alpha;
uniform bool unlit;

out vec4 FragColor;

float attenuation(Light l, float dist) {
    if (l.range <= 0.0) {
        return 1.0;
    }
    float f = clamp(1.0 - dist / l.range, 0.0, 1.0);
    return f * f;
}

void main() {
    vec3 emissive = emissiveColor * emissiveIntensity;
    if (unlit) {
        FragColor = vec4(diffuseColor + emissive, alpha);
        return;
    }

    vec3 norm = normalize(Normal);
    vec3 viewDir = normalize(viewPos - FragPos);
    vec3 result = vec3(0.0);

    for (int i = 0; i < lightCount && i < MAX_LIGHTS; i++) {
        Light l = lights[i];
        vec3 radiance = l.color * l.intensity;
        if (l.kind == AMBIENT) {
            result += radiance * diffuseColor;
            continue;
        }

        vec3 lightDir;
        float falloff = 1.0;
        if (l.kind == DIRECTIONAL) {
            lightDir = normalize(-l.direction);
        } else {
            vec3 toLight = l.position - FragPos;
            lightDir = normalize(toLight);
            falloff = attenuation(l, length(toLight));
            if (l.kind == SPOT) {
                float theta = dot(lightDir, normalize(-l.direction));
                falloff *= smoothstep(l.cosOuter, l.cosInner, theta);
            }
        }

        float diff = max(dot(norm, lightDir), 0.0);
        vec3 halfway = normalize(lightDir + viewDir);
        float spec = pow(max(dot(norm, halfway), 0.0), shininess);
        result += radiance * falloff * (diff * diffuseColor + 0.25 * spec);
    }

    FragColor = vec4(result + emissive, alpha);
}
`
